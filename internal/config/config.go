package config

import "strings"

// Config is the site configuration decoded by viper from config.yaml,
// SPEEDY_* environment variables and command line flags.
type Config struct {
	SiteTitle  string  `mapstructure:"siteTitle" yaml:"siteTitle"`
	BaseURL    string  `mapstructure:"baseURL" yaml:"baseURL"`
	PostsDir   string  `mapstructure:"postsDir" yaml:"postsDir"`
	PagesDir   string  `mapstructure:"pagesDir" yaml:"pagesDir"`
	LayoutsDir string  `mapstructure:"layoutsDir" yaml:"layoutsDir"`
	AssetsDir  string  `mapstructure:"assetsDir" yaml:"assetsDir"`
	OutputDir  string  `mapstructure:"outputDir" yaml:"outputDir"`
	Addr       string  `mapstructure:"addr" yaml:"addr"`
	LinkTags   bool    `mapstructure:"linkTags" yaml:"linkTags"`
	Publish    Publish `mapstructure:"publish" yaml:"publish"`
}

// Publish configures the commit and push of the output directory.
type Publish struct {
	Remote      string `mapstructure:"remote" yaml:"remote"`
	AuthorName  string `mapstructure:"authorName" yaml:"authorName"`
	AuthorEmail string `mapstructure:"authorEmail" yaml:"authorEmail"`
	Message     string `mapstructure:"message" yaml:"message"`
}

// Defaults holds the value of every key when neither a config file nor the
// environment sets it.
var Defaults = Config{
	SiteTitle:  "speedy",
	BaseURL:    "http://localhost:8000",
	PostsDir:   "posts",
	PagesDir:   "pages",
	LayoutsDir: "layouts",
	AssetsDir:  "assets",
	OutputDir:  "static",
	Addr:       "127.0.0.1:8000",
	LinkTags:   true,
	Publish: Publish{
		Remote:      "origin",
		AuthorName:  "speedy",
		AuthorEmail: "speedy@localhost",
		Message:     "Publish site",
	},
}

// DefaultMap flattens Defaults into the dotted keys viper expects.
func DefaultMap() map[string]any {
	d := Defaults
	return map[string]any{
		"siteTitle":           d.SiteTitle,
		"baseURL":             d.BaseURL,
		"postsDir":            d.PostsDir,
		"pagesDir":            d.PagesDir,
		"layoutsDir":          d.LayoutsDir,
		"assetsDir":           d.AssetsDir,
		"outputDir":           d.OutputDir,
		"addr":                d.Addr,
		"linkTags":            d.LinkTags,
		"publish.remote":      d.Publish.Remote,
		"publish.authorName":  d.Publish.AuthorName,
		"publish.authorEmail": d.Publish.AuthorEmail,
		"publish.message":     d.Publish.Message,
	}
}

// SiteURL returns BaseURL without a trailing slash.
func (c Config) SiteURL() string {
	return strings.TrimRight(c.BaseURL, "/")
}
