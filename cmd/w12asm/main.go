// Command w12asm assembles one or more 12-bit machine source files into
// their base-64 object encoding, per file-stem argument.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/hexaflex/word12asm/asm"
	"github.com/hexaflex/word12asm/internal/asmerr"
	"github.com/hexaflex/word12asm/internal/config"
	"github.com/hexaflex/word12asm/internal/preprocessor"
)

func main() {
	c := parseArgs()

	if len(c.Files) == 0 {
		flag.Usage()
		os.Exit(1)
	}

	var color Colorizer = ansiColorizer{}
	if c.NoColor {
		color = plainColorizer{}
	}

	cfg := config.Default()
	if c.ConfigPath != "" {
		var err error
		cfg, err = config.Load(c.ConfigPath)
		if err != nil {
			fmt.Println(color.Error(fmt.Sprintf("ERROR - %s", err)))
			os.Exit(1)
		}
	}

	for _, stem := range c.Files {
		assembleFile(stem, cfg, color)
	}
}

// assembleFile carries one file stem through preprocessing and both
// assembly passes, per §6. A failure at any stage is reported to standard
// output and the file is skipped; processing continues with the next stem.
func assembleFile(stem string, cfg config.Config, color Colorizer) {
	asPath := stem + ".as"

	src, err := os.ReadFile(asPath)
	if err != nil {
		fmt.Println(color.Warning(fmt.Sprintf("WARNING - %s", errors.Wrapf(err, "unable to read %s", asPath))))
		return
	}

	expanded, err := preprocessor.Expand(stem, string(src))
	if err != nil {
		fmt.Println(color.Error(fmt.Sprintf("ERROR - %s", err)))
		fmt.Printf("skipping file %q\n", asPath)
		return
	}

	amPath := stem + ".am"
	if err := os.WriteFile(amPath, []byte(expanded), 0644); err != nil {
		fmt.Println(color.Warning(fmt.Sprintf("WARNING - %s", errors.Wrapf(err, "unable to write %s", amPath))))
		return
	}

	amContent, err := os.ReadFile(amPath)
	if err != nil {
		fmt.Println(color.Warning(fmt.Sprintf("WARNING - %s", errors.Wrapf(err, "unable to read back %s", amPath))))
		return
	}

	lines := strings.Split(strings.TrimRight(string(amContent), "\n"), "\n")
	out, diags := asm.Assemble(stem, lines, cfg)

	for _, d := range diags.Items() {
		if d.Severity == asmerr.SeverityWarning {
			fmt.Println(color.Warning(d.Error()))
		} else {
			fmt.Println(color.Error(d.Error()))
		}
	}

	if out == nil {
		fmt.Printf("skipping file %q: %d error(s)\n", asPath, diags.Count())
		return
	}

	objPath := stem + ".obj"
	if err := os.WriteFile(objPath, out.Obj, 0644); err != nil {
		fmt.Println(color.Warning(fmt.Sprintf("WARNING - %s", errors.Wrapf(err, "unable to write %s", objPath))))
		return
	}
	if out.Ext != nil {
		extPath := stem + ".ext"
		if err := os.WriteFile(extPath, out.Ext, 0644); err != nil {
			fmt.Println(color.Warning(fmt.Sprintf("WARNING - %s", errors.Wrapf(err, "unable to write %s", extPath))))
		}
	}
	if out.Ent != nil {
		entPath := stem + ".ent"
		if err := os.WriteFile(entPath, out.Ent, 0644); err != nil {
			fmt.Println(color.Warning(fmt.Sprintf("WARNING - %s", errors.Wrapf(err, "unable to write %s", entPath))))
		}
	}
}
