package main

import (
	"fmt"
	"net/url"
	"os"

	"github.com/pelletier/go-toml/v2"

	csvparsers "github.com/richardrobinson0924/CSVParsers"
)

// A Profile describes how to parse one kind of file: separator, header
// handling, column layout and, for load, the target database.
type Profile struct {
	Separator string         `toml:"separator"`
	Header    bool           `toml:"header"`
	Columns   string         `toml:"columns"`
	Database  DatabaseConfig `toml:"database"`
}

type DatabaseConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Database string `toml:"database"`
	Table    string `toml:"table"`
}

func (c *DatabaseConfig) ConnectionURL() url.URL {
	return url.URL{
		Scheme: "postgres",
		Host:   c.Host + fmt.Sprintf(":%d", c.Port),
		User:   url.UserPassword(c.User, c.Password),
		Path:   c.Database,
	}
}

func (c *DatabaseConfig) ConnectionString() string {
	u := c.ConnectionURL()
	return u.String()
}

func NewProfile() *Profile {
	return &Profile{Separator: ","}
}

func (p *Profile) Load(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}

	defer file.Close()

	err = toml.NewDecoder(file).Decode(p)
	if err != nil {
		return err
	}

	return nil
}

// Fields parses the profile's column spec.
func (p *Profile) Fields() ([]csvparsers.Field, error) {
	if p.Columns == "" {
		return nil, fmt.Errorf("no columns declared (use --fields or the profile's columns entry)")
	}
	return csvparsers.ParseFields(p.Columns)
}

// Options converts the profile's parsing settings to reader options.
func (p *Profile) Options() ([]csvparsers.Option, error) {
	var opts []csvparsers.Option
	if len(p.Separator) != 1 {
		return nil, fmt.Errorf("separator must be a single character, got %q", p.Separator)
	}
	if p.Separator != "," {
		opts = append(opts, csvparsers.WithSeparator(p.Separator[0]))
	}
	if p.Header {
		opts = append(opts, csvparsers.WithHeader())
	}
	return opts, nil
}
