package iofs

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/pokedb/pkg/errcode"
)

func CreateDirError(dir string, err error) error {
	msg := "Cannot create %s"
	vars := []any{dir}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CreateDirError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot create directory: %w",
			fn.Name(), err),
	}
}

func CopyFileError(file string, err error) error {
	msg := "Cannot copy config file to %s"
	vars := []any{file}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CopyFileError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot copy file: %w",
			fn.Name(), err),
	}
}

func ReadFileError(path string, err error) error {
	msg := "Cannot read <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ReadFileError,
		Err:  fmt.Errorf("from %s: cannot read %s: %w", fn.Name(), path, err),
		Msg:  msg,
		Vars: vars,
	}
}

// ConfigSyntaxError is returned for a config file that is not valid
// YAML or has a section of a wrong shape.
func ConfigSyntaxError(path string, err error) error {
	msg := `Config file <em>%s</em> is malformed

<em>How to fix:</em>
  1. Compare it with the layout printed by "pokedb config"
  2. Or delete it, a default one is created on the next run`
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ConfigSyntaxError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: parse %s: %w", fn.Name(), path, err),
	}
}

// UnknownSectionError is returned for a top level key that pokedb
// does not use, usually a typo.
func UnknownSectionError(path, section string) error {
	msg := "Unknown section <em>%s</em> in <em>%s</em>"
	vars := []any{section, path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ConfigSyntaxError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: unknown section %q in %s",
			fn.Name(), section, path),
	}
}

// SectionTypeError describes a section that is not a mapping.
func SectionTypeError(section string) error {
	return fmt.Errorf("section %q must be a mapping", section)
}
