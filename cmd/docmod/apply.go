package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/signadot/docmod/ir"
	"github.com/signadot/docmod/modifier"
	"github.com/signadot/docmod/update"
)

func apply(cfg *ApplyConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Apply.Parse(cc, args)
	if err != nil {
		cfg.Apply.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: apply requires an update expression and a document file", cli.ErrUsage)
	}
	setupColor(cfg.MainConfig)

	driver, doc, err := loadRun(cfg.MainConfig, cc, args[0], args[1])
	if err != nil {
		return err
	}
	before := doc.Clone()
	res, err := driver.Update(doc, cfg.Matched)
	if err != nil {
		return fmt.Errorf("error updating %s: %w", args[1], err)
	}
	if cfg.Diff {
		if err := printDiff(cc.Out, cfg.MainConfig, before, doc); err != nil {
			return err
		}
	} else {
		if err := printNode(cc.Out, cfg.MainConfig, doc); err != nil {
			return err
		}
	}
	if cfg.Log {
		fmt.Fprintf(cc.Out, "---\n")
		if err := printNode(cc.Out, cfg.MainConfig, res.Log); err != nil {
			return err
		}
	}
	return nil
}

func logCmd(cfg *LogConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Log.Parse(cc, args)
	if err != nil {
		cfg.Log.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: log requires an update expression and a document file", cli.ErrUsage)
	}
	driver, doc, err := loadRun(cfg.MainConfig, cc, args[0], args[1])
	if err != nil {
		return err
	}
	res, err := driver.Update(doc, cfg.Matched)
	if err != nil {
		return fmt.Errorf("error updating %s: %w", args[1], err)
	}
	return printNode(cc.Out, cfg.MainConfig, res.Log)
}

func ops(cc *cli.Context) error {
	fmt.Fprintf(cc.Out, "available update operators:\n")
	for _, name := range modifier.Names() {
		fmt.Fprintf(cc.Out, "\t- %s\n", name)
	}
	return nil
}

func loadRun(cfg *MainConfig, cc *cli.Context, exprArg, fileArg string) (*update.Driver, *ir.Node, error) {
	expr, err := parseDoc(cfg, []byte(exprArg))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: bad update expression: %w", cli.ErrUsage, err)
	}
	driver, err := update.Parse(expr)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	data, err := readFile(cc, fileArg)
	if err != nil {
		return nil, nil, err
	}
	doc, err := parseDoc(cfg, data)
	if err != nil {
		return nil, nil, fmt.Errorf("error decoding %s: %w", fileArg, err)
	}
	return driver, doc, nil
}

func readFile(cc *cli.Context, file string) ([]byte, error) {
	if file == "-" {
		return io.ReadAll(cc.In)
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("could not read %q: %w", file, err)
	}
	return data, nil
}

func parseDoc(cfg *MainConfig, data []byte) (*ir.Node, error) {
	if cfg.Y {
		return ir.FromYAML(data)
	}
	return ir.FromJSON(data)
}

func printNode(w io.Writer, cfg *MainConfig, y *ir.Node) error {
	if cfg.Y {
		d, err := ir.ToYAML(y)
		if err != nil {
			return err
		}
		_, err = w.Write(d)
		return err
	}
	d, err := indentJSON(y)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", d)
	return err
}

func printDiff(w io.Writer, cfg *MainConfig, before, after *ir.Node) error {
	from, err := indentJSON(before)
	if err != nil {
		return err
	}
	to, err := indentJSON(after)
	if err != nil {
		return err
	}
	dmp := diffpatch.New()
	diffs := dmp.DiffMain(string(from)+"\n", string(to)+"\n", false)
	diffs = dmp.DiffCleanupSemantic(diffs)
	for _, d := range diffs {
		switch d.Type {
		case diffpatch.DiffDelete:
			fmt.Fprint(w, color.RedString("%s", d.Text))
		case diffpatch.DiffInsert:
			fmt.Fprint(w, color.GreenString("%s", d.Text))
		default:
			fmt.Fprint(w, d.Text)
		}
	}
	return nil
}

func indentJSON(y *ir.Node) ([]byte, error) {
	d, err := ir.ToJSON(y)
	if err != nil {
		return nil, err
	}
	buf := bytes.NewBuffer(nil)
	if err := json.Indent(buf, d, "", "  "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func setupColor(cfg *MainConfig) {
	if cfg.Color {
		color.NoColor = false
		return
	}
	color.NoColor = !isatty.IsTerminal(os.Stdout.Fd())
}
