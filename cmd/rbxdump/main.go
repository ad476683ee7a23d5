package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	rbxdoc "github.com/SergeyMakeev/RbxDoc"
	"github.com/SergeyMakeev/RbxDoc/internal/observability"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "rbxdump: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "optional TOML config file")
	typeFilter := flag.String("type", "", "only dump instances of this type name")
	showProps := flag.Bool("props", false, "dump decoded properties per instance")
	flag.Parse()

	if flag.NArg() != 1 {
		return fmt.Errorf("usage: rbxdump [flags] <file>")
	}

	cfg := defaultDumpConfig()
	if *configPath != "" {
		var err error
		if cfg, err = loadDumpConfig(*configPath); err != nil {
			return err
		}
	}
	if *typeFilter != "" {
		cfg.TypeFilter = *typeFilter
	}
	if *showProps {
		cfg.ShowProperties = true
	}

	logger := observability.InitLogger("rbxdump")
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		logger = logger.Level(level)
	}

	doc, err := rbxdoc.LoadFile(flag.Arg(0), rbxdoc.WithLogger(logger))
	if err != nil {
		return err
	}

	dump(os.Stdout, doc, cfg)
	return nil
}

func dump(w io.Writer, doc *rbxdoc.Document, cfg dumpConfig) {
	fmt.Fprintf(w, "types: %d, instances: %d\n", len(doc.Types), len(doc.Instances))
	for _, entry := range doc.Metadata {
		fmt.Fprintf(w, "meta %s = %s\n", entry.Name, entry.Value)
	}

	printed := 0
	for i := range doc.Instances {
		inst := &doc.Instances[i]
		typeName := doc.TypeName(inst)
		if cfg.TypeFilter != "" && !strings.EqualFold(typeName, cfg.TypeFilter) {
			continue
		}
		if cfg.MaxInstances > 0 && printed >= cfg.MaxInstances {
			fmt.Fprintf(w, "... (truncated)\n")
			break
		}
		printed++

		fmt.Fprintf(w, "#%d %s parent=%d children=%d", inst.ID, typeName, inst.ParentID, len(inst.ChildIDs()))
		if inst.IsService {
			fmt.Fprintf(w, " service(rooted=%v)", inst.IsServiceRooted)
		}
		fmt.Fprintln(w)

		if !cfg.ShowProperties {
			continue
		}
		props := inst.Properties()
		for j := range props {
			prop := &props[j]
			fmt.Fprintf(w, "  %s [%s] = %s\n", prop.Name(), prop.Kind(), renderValue(prop))
		}
	}
}

func renderValue(p *rbxdoc.Property) string {
	switch p.Kind() {
	case rbxdoc.KindUnknown:
		return "<unsupported>"
	case rbxdoc.KindString, rbxdoc.KindSharedStringDictionaryIndex:
		return fmt.Sprintf("%q", p.AsString(""))
	case rbxdoc.KindVector3:
		v := p.AsVector3(rbxdoc.Vector3{})
		return fmt.Sprintf("{%g, %g, %g}", v.X, v.Y, v.Z)
	case rbxdoc.KindCFrameMatrix, rbxdoc.KindOptionalCFrame:
		cf := p.AsCFrame(rbxdoc.CFrame{})
		return fmt.Sprintf("t{%g, %g, %g} r%v", cf.Translation.X, cf.Translation.Y, cf.Translation.Z, cf.Rotation.V)
	default:
		return fmt.Sprintf("%v", p.Value())
	}
}
