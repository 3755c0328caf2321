// Package config loads default mock options from YAML files and keeps them in
// an explicit Registry.
package config

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"moxy/pkg/mock"
)

// File is the on-disk form of mock options. Unset fields keep the mock
// defaults.
//
//	access_key: spy
//	mock_return: true
//	include_properties: ["get*", "/^on[A-Z]/"]
//	exclude_properties: [constructor]
//	record_getter: true
//	log_level: debug
type File struct {
	AccessKey         string   `yaml:"access_key"`
	MockReturn        *bool    `yaml:"mock_return"`
	MockNewInstance   *bool    `yaml:"mock_new_instance"`
	MockMethod        *bool    `yaml:"mock_method"`
	IncludeProperties []string `yaml:"include_properties"`
	ExcludeProperties []string `yaml:"exclude_properties"`
	RecordGetter      *bool    `yaml:"record_getter"`
	RecordSetter      *bool    `yaml:"record_setter"`
	LogLevel          string   `yaml:"log_level"`
}

// Options converts f to mock options. Logs go to stderr when a log level is
// set.
func (f *File) Options() []mock.Option {
	var opts []mock.Option
	if f.AccessKey != "" {
		opts = append(opts, mock.WithAccessKey(f.AccessKey))
	}
	if f.MockReturn != nil {
		opts = append(opts, mock.WithMockReturn(*f.MockReturn))
	}
	if f.MockNewInstance != nil {
		opts = append(opts, mock.WithMockNewInstance(*f.MockNewInstance))
	}
	if f.MockMethod != nil {
		opts = append(opts, mock.WithMockMethod(*f.MockMethod))
	}
	if len(f.IncludeProperties) > 0 {
		opts = append(opts, mock.WithIncludeProperties(f.IncludeProperties...))
	}
	if len(f.ExcludeProperties) > 0 {
		opts = append(opts, mock.WithExcludeProperties(f.ExcludeProperties...))
	}
	if f.RecordGetter != nil {
		opts = append(opts, mock.WithRecordGetter(*f.RecordGetter))
	}
	if f.RecordSetter != nil {
		opts = append(opts, mock.WithRecordSetter(*f.RecordSetter))
	}
	if l, ok := f.Logger(os.Stderr); ok {
		opts = append(opts, mock.WithLogger(l))
	}
	return opts
}

// Logger builds a console logger writing to w at the configured level. It
// reports false when no log level is set. A level below zerolog's global
// level lowers the global level, otherwise trap traces would be dropped.
func (f *File) Logger(w io.Writer) (zerolog.Logger, bool) {
	if f.LogLevel == "" {
		return zerolog.Nop(), false
	}
	lvl, err := zerolog.ParseLevel(f.LogLevel)
	if err != nil {
		return zerolog.Nop(), false
	}
	if lvl < zerolog.GlobalLevel() {
		zerolog.SetGlobalLevel(lvl)
	}
	out := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    true,
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), true
}
