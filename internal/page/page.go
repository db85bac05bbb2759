// Package page renders the institute's single-page site: static promotional
// sections from content.yaml plus the consultation widget mount.
package page

import (
    "bytes"
    _ "embed"
    "fmt"
    "html/template"
    "io"
    "time"

    "gopkg.in/yaml.v3"

    "github.com/example/research-institute/internal/contact"
)

//go:embed content.yaml
var defaultContent []byte

//go:embed page.html.tmpl
var pageTemplate string

type Brand struct {
    Name         string `yaml:"name"`
    Tagline      string `yaml:"tagline"`
    Motto        string `yaml:"motto"`
    Founder      string `yaml:"founder"`
    FounderTitle string `yaml:"founder_title"`
}

type NavItem struct {
    Anchor string `yaml:"anchor"`
    Label  string `yaml:"label"`
}

type Publication struct {
    Title    string `yaml:"title"`
    Subtitle string `yaml:"subtitle"`
    Year     string `yaml:"year"`
}

type Hero struct {
    Badge    string      `yaml:"badge"`
    Title    string      `yaml:"title"`
    Lead     string      `yaml:"lead"`
    Featured Publication `yaml:"featured"`
}

type Stat struct {
    Value string `yaml:"value"`
    Label string `yaml:"label"`
}

type About struct {
    Title      string   `yaml:"title"`
    Bio        string   `yaml:"bio"`
    Pitch      string   `yaml:"pitch"`
    Stats      []Stat   `yaml:"stats"`
    Highlights []string `yaml:"highlights"`
}

type Service struct {
    Title       string `yaml:"title"`
    Description string `yaml:"description"`
    Icon        string `yaml:"icon"`
}

type Review struct {
    Name  string `yaml:"name"`
    Role  string `yaml:"role"`
    Text  string `yaml:"text"`
    Stars int    `yaml:"stars"`
}

type Content struct {
    Brand        Brand         `yaml:"brand"`
    Nav          []NavItem     `yaml:"nav"`
    Hero         Hero          `yaml:"hero"`
    Publications []Publication `yaml:"publications"`
    About        About         `yaml:"about"`
    Services     []Service     `yaml:"services"`
    Reviews      []Review      `yaml:"reviews"`
}

// ParseContent decodes page content from YAML, rejecting unknown keys.
func ParseContent(r io.Reader) (*Content, error) {
    dec := yaml.NewDecoder(r)
    dec.KnownFields(true)
    var c Content
    if err := dec.Decode(&c); err != nil { return nil, fmt.Errorf("parse page content: %w", err) }
    for i, rv := range c.Reviews {
        if rv.Stars < 0 || rv.Stars > 5 { return nil, fmt.Errorf("review %d: stars must be 0-5, got %d", i, rv.Stars) }
    }
    return &c, nil
}

// DefaultContent returns the embedded institute content.
func DefaultContent() *Content {
    c, err := ParseContent(bytes.NewReader(defaultContent))
    if err != nil { panic(err) }
    return c
}

type Page struct {
    Content *Content
    Channel contact.Channel
    tmpl    *template.Template
}

func New(content *Content, ch contact.Channel) (*Page, error) {
    funcs := template.FuncMap{
        "contactLink": ch.Link,
        "stars":       func(n int) []struct{} { return make([]struct{}, n) },
        "cover":       func(p Publication, founder string) cover { return cover{Publication: p, Founder: founder} },
        "initial": func(name string) string {
            for _, r := range name { return string(r) }
            return ""
        },
    }
    t, err := template.New("page").Funcs(funcs).Parse(pageTemplate)
    if err != nil { return nil, err }
    return &Page{Content: content, Channel: ch, tmpl: t}, nil
}

// cover is what the book partial renders: a publication and its author.
type cover struct {
    Publication
    Founder string
}

type view struct {
    *Content
    OrderLink    string
    Organization string
    Year         int
}

// Render writes the full page. now supplies the footer year.
func (p *Page) Render(w io.Writer, now time.Time) error {
    return p.tmpl.Execute(w, view{Content: p.Content, OrderLink: p.Channel.OrderLink(), Organization: p.Channel.Organization, Year: now.Year()})
}
