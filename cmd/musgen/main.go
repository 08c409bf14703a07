package main

import (
	"os"
	"reflect"
	"strings"

	musgen "github.com/mus-format/musgen-go/mus"
	genops "github.com/mus-format/musgen-go/options/generate"
	structops "github.com/mus-format/musgen-go/options/struct"
	typeops "github.com/mus-format/musgen-go/options/type"
	"github.com/sentinelkb/sentinel/core"
)

func main() {
	cwd, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	// If we're in the core subpackage, cd up to project root
	if strings.HasSuffix(cwd, "core") {
		if err := os.Chdir(".."); err != nil {
			panic(err)
		}
	}
	g, err := musgen.NewCodeGenerator(
		genops.WithPkgPath("github.com/sentinelkb/sentinel/core"),
	)
	if err != nil {
		panic(err)
	}

	g.AddDefinedType(reflect.TypeFor[core.ID]())
	g.AddDefinedType(reflect.TypeFor[core.CaptureStatus]())
	g.AddDefinedType(reflect.TypeFor[core.ContentType]())

	// Unix micro timestamps
	opts := typeops.WithTimeUnit(typeops.Micro)
	err = g.AddStruct(reflect.TypeFor[core.Capture](),
		structops.WithField(),
		structops.WithField(),
		structops.WithField(),
		structops.WithField(),
		structops.WithField(),
		structops.WithField(),
		structops.WithField(),
		structops.WithField(),
		structops.WithField(opts),
		structops.WithField(opts),
		structops.WithField(opts),
		structops.WithField(opts))
	if err != nil {
		panic(err)
	}

	err = g.AddStruct(reflect.TypeFor[core.Insight](),
		structops.WithField(),
		structops.WithField(),
		structops.WithField(),
		structops.WithField(),
		structops.WithField(),
		structops.WithField(),
		structops.WithField(),
		structops.WithField(),
		structops.WithField(),
		structops.WithField(opts),
		structops.WithField(opts),
		structops.WithField(opts))
	if err != nil {
		panic(err)
	}

	err = g.AddStruct(reflect.TypeFor[core.Tag](),
		structops.WithField(),
		structops.WithField(),
		structops.WithField(opts),
		structops.WithField(opts))
	if err != nil {
		panic(err)
	}

	err = g.AddStruct(reflect.TypeFor[core.Checkpoint](),
		structops.WithField(),
		structops.WithField(),
		structops.WithField(opts))
	if err != nil {
		panic(err)
	}

	bs, err := g.Generate()
	if err != nil {
		panic(err)
	}

	err = os.WriteFile("./core/records_mus.gen.go", bs, 0644)
	if err != nil {
		panic(err)
	}
}
