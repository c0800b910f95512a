package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"

	"github.com/go-imsto/imsizer/size"
	"github.com/go-imsto/imsizer/utils"
)

// NameSpace is the prefix of environment variables
const NameSpace = "imsizer"

// Version of the tool
var Version = "0.1.0"

// Config holds everything a convert run needs. The flag tag is the
// command-line flag name and the config-file key.
type Config struct {
	Source     string    `envconfig:"SOURCE" flag:"source" validate:"required,dir"`
	Dest       string    `envconfig:"DEST" flag:"dest" validate:"required"`
	Sizes      size.List `envconfig:"SIZES" flag:"size" validate:"min=1"`
	Verbose    bool      `envconfig:"VERBOSE" flag:"verbose"`
	Meta       bool      `envconfig:"META" flag:"meta"`
	Contents   bool      `envconfig:"CONTENTS" flag:"contents"`
	SourceSize string    `envconfig:"SRC_SIZE" flag:"src-size"`
	Jobs       int       `envconfig:"JOBS" flag:"jobs" default:"1" validate:"min=1"`
	Quality    int       `envconfig:"QUALITY" flag:"quality" default:"88" validate:"min=1,max=100"`
	Filter     string    `envconfig:"FILTER" flag:"filter" default:"bicubic" validate:"oneof=nearest bilinear bicubic mitchell lanczos2 lanczos3"`
	LogFile    string    `envconfig:"LOG_FILE" flag:"log-file"`
}

// Current is loaded from the environment at start
var Current Config

func init() {
	envconfig.MustProcess(NameSpace, &Current)
}

// Error lists every configuration problem found
type Error struct {
	Problems []string
}

func (e *Error) Error() string {
	return strings.Join(e.Problems, "\n")
}

// LoadFile merges a yaml/json/toml file into c, keys listed in skip are left alone
func LoadFile(filename string, c *Config, skip map[string]bool) error {
	v := viper.New()
	v.SetConfigFile(filename)
	if err := v.ReadInConfig(); err != nil {
		return &Error{Problems: []string{fmt.Sprintf("Can not read config file %s: %s", filename, err)}}
	}

	set := func(key string) bool {
		return v.IsSet(key) && !skip[key]
	}
	if set("source") {
		c.Source = v.GetString("source")
	}
	if set("dest") {
		c.Dest = v.GetString("dest")
	}
	if set("size") {
		c.Sizes = size.ParseList(v.GetStringSlice("size")...)
	}
	if set("verbose") {
		c.Verbose = v.GetBool("verbose")
	}
	if set("meta") {
		c.Meta = v.GetBool("meta")
	}
	if set("contents") {
		c.Contents = v.GetBool("contents")
	}
	if set("src-size") {
		c.SourceSize = v.GetString("src-size")
	}
	if set("jobs") {
		c.Jobs = v.GetInt("jobs")
	}
	if set("quality") {
		c.Quality = v.GetInt("quality")
	}
	if set("filter") {
		c.Filter = v.GetString("filter")
	}
	if set("log-file") {
		c.LogFile = v.GetString("log-file")
	}
	return nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	vd := validator.New()
	vd.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("flag")
	})
	return vd
}

// Validate checks required values and the source directory, then creates dest
func (c *Config) Validate() error {
	var problems []string
	if err := validate.Struct(c); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		for _, fe := range verrs {
			problems = append(problems, message(fe))
		}
		return &Error{Problems: problems}
	}

	if err := os.MkdirAll(c.Dest, os.FileMode(0755)); err != nil || !utils.IsDir(c.Dest) {
		return &Error{Problems: []string{"Can not create directory " + c.Dest}}
	}
	return nil
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "--" + fe.Field() + " is required parameter"
	case "dir":
		return fmt.Sprintf("Directory %v doesn't exist.", fe.Value())
	case "min":
		if fe.Kind() == reflect.Slice {
			return "--" + fe.Field() + " is required parameter"
		}
	}
	return fmt.Sprintf("--%s: invalid value %v (%s %s)", fe.Field(), fe.Value(), fe.Tag(), fe.Param())
}
