// Command shadercfg inspects and enumerates shader combo configurations.
//
// Usage:
//
//	shadercfg [options] <config.json>
//
// Examples:
//
//	shadercfg -describe shaders.json          # Catalog summary
//	shadercfg -end 100 shaders.json           # First 100 commands, fxc-style
//	shadercfg -machine shaders.json           # Raw NUL-separated payloads
//	shadercfg -jobs 8 shaders.json            # Walk the axis on 8 stripes
//	shadercfg -schema                         # Print the config JSON Schema
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	shadercompile "github.com/misyltoad/ShaderCompile2"
	"github.com/misyltoad/ShaderCompile2/catalog"
	"github.com/misyltoad/ShaderCompile2/config"
)

var (
	describe   = flag.Bool("describe", false, "print the catalog summary and exit")
	verbose    = flag.Bool("v", false, "with -describe, also print parsed skip expressions")
	schema     = flag.Bool("schema", false, "print the configuration JSON Schema and exit")
	machine    = flag.Bool("machine", false, "emit raw NUL-separated command payloads")
	start      = flag.Uint64("start", 0, "first command index")
	end        = flag.Uint64("end", 0, "end of the command window (default: axis end)")
	jobs       = flag.Int("jobs", 1, "number of parallel stripes")
	check      = flag.Bool("check", false, "warn about missing shader source files")
	shaderPath = flag.String("shaderpath", "", "directory shader sources are relative to")
)

func main() {
	flag.Usage = usage
	flag.Parse()

	if *schema {
		out, err := config.Schema()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error generating schema: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(out))
		return
	}

	args := flag.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Error: no configuration file specified")
		usage()
		os.Exit(1)
	}
	configPath := args[0]

	if *check {
		checkSources(configPath)
	}

	cat, err := shadercompile.ReadConfiguration(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *describe {
		describeCatalog(cat)
		return
	}

	last := cat.Total()
	if *end != 0 && *end < last {
		last = *end
	}
	if *start >= last {
		return
	}

	if err := enumerate(cat, *start, last, *jobs); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func describeCatalog(cat *catalog.Catalog) {
	for _, info := range shadercompile.DescribeConfiguration(cat) {
		if info.Name == "" {
			fmt.Printf("total commands: %d\n", info.CommandEnd)
			break
		}
		fmt.Printf("%s (%s, %s): %d combos (%d static x %d dynamic), commands [%d, %d)\n",
			info.Name, info.ShaderFileName, info.ShaderVersion,
			info.NumCombos, info.NumStaticCombos, info.NumDynamicCombos,
			info.CommandStart, info.CommandEnd)
	}

	if !*verbose {
		return
	}
	for _, e := range cat.Entries() {
		fmt.Printf("  %s skip: %s\n", e.Name, e.Skip)
	}
}

// enumerate walks [first, last) split into stripes, one goroutine per
// stripe, each driving its own cursors. Stripe outputs are buffered and
// written in order.
func enumerate(cat *catalog.Catalog, first, last uint64, stripes int) error {
	if stripes < 1 {
		stripes = 1
	}
	if span := last - first; uint64(stripes) > span {
		stripes = int(span)
	}

	bufs := make([]bytes.Buffer, stripes)
	span := last - first
	var g errgroup.Group

	for i := 0; i < stripes; i++ {
		i := i
		lo := first + span*uint64(i)/uint64(stripes)
		hi := first + span*uint64(i+1)/uint64(stripes)
		g.Go(func() error {
			return walkStripe(cat, lo, hi, &bufs[i])
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i := range bufs {
		if _, err := bufs[i].WriteTo(os.Stdout); err != nil {
			return err
		}
	}
	return nil
}

func walkStripe(cat *catalog.Catalog, lo, hi uint64, out *bytes.Buffer) error {
	var cur *catalog.Cursor
	var payload []byte

	for cmd := lo; ; {
		cur, cmd = cat.Next(cmd, cur, hi)
		if cur == nil {
			return nil
		}

		payload = payload[:0]
		if *machine {
			payload = cur.AppendCommand(payload)
			out.Write(payload)
		} else {
			payload = cur.AppendCommandHumanReadable(payload)
			// Drop the trailing NUL for console output.
			out.Write(payload[:len(payload)-1])
			out.WriteByte('\n')
		}
	}
}

// checkSources warns about shader source files that cannot be found,
// without aborting: the enumeration itself never reads them.
func checkSources(configPath string) {
	shaders, err := config.Load(configPath)
	if err != nil {
		return
	}

	seen := make(map[string]bool)
	for _, s := range shaders {
		for _, f := range s.Files {
			name := f
			if !filepath.IsAbs(name) && *shaderPath != "" {
				name = filepath.Join(*shaderPath, name)
			}
			if seen[name] {
				continue
			}
			seen[name] = true
			if _, err := os.Stat(name); err != nil {
				fmt.Fprintf(os.Stderr, "Can't find %q\n", name)
			}
		}
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: shadercfg [options] <config.json>\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  shadercfg -describe shaders.json   Catalog summary\n")
	fmt.Fprintf(os.Stderr, "  shadercfg -end 100 shaders.json    First 100 commands\n")
	fmt.Fprintf(os.Stderr, "  shadercfg -jobs 8 shaders.json     Parallel stripes\n")
}
