package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// AppendCommand appends the machine-readable combo command to dst and
// returns the extended buffer: a run of NUL-terminated fields ending with
// an extra NUL. Fields: "command", the primary source path, the shader
// version, "SHADERCOMBO", the combo number in lowercase hex,
// "SHADER_MODEL_<VERSION>", "1", then name/value pairs per axis in slot
// order.
func (c *Cursor) AppendCommand(dst []byte) []byte {
	e := c.entry

	dst = appendField(dst, "command")
	dst = appendField(dst, e.ShaderSrc)
	dst = appendField(dst, e.Info.ShaderVersion)

	dst = appendField(dst, "SHADERCOMBO")
	dst = strconv.AppendUint(dst, c.comboNumber, 16)
	dst = append(dst, 0)

	dst = append(dst, "SHADER_MODEL_"...)
	dst = append(dst, strings.ToUpper(e.Info.ShaderVersion)...)
	dst = append(dst, 0)
	dst = appendField(dst, "1")

	for i, v := range c.values {
		dst = appendField(dst, e.Gen.NameAt(i))
		dst = strconv.AppendInt(dst, int64(v), 10)
		dst = append(dst, 0)
	}

	return append(dst, 0)
}

// AppendCommandHumanReadable appends a single fxc.exe-style command line
// to dst, NUL-terminated, and returns the extended buffer.
func (c *Cursor) AppendCommandHumanReadable(dst []byte) []byte {
	e := c.entry

	dst = fmt.Appendf(dst, "fxc.exe /DCENTROIDMASK=%d ", e.Info.CentroidMask)
	dst = fmt.Appendf(dst, "/DSHADERCOMBO=%x /DSHADER_MODEL_%s=1 /T%s /Emain ",
		c.comboNumber, strings.ToUpper(e.Info.ShaderVersion), e.Info.ShaderVersion)

	for i, v := range c.values {
		dst = fmt.Appendf(dst, "/D%s=%d ", e.Gen.NameAt(i), v)
	}

	dst = append(dst, e.ShaderSrc...)
	return append(dst, 0)
}

func appendField(dst []byte, s string) []byte {
	dst = append(dst, s...)
	return append(dst, 0)
}
