package page

import (
    "io"
    "net/url"
    "strings"

    "golang.org/x/net/html"
)

type Link struct {
    Href string `json:"href"`
    Text string `json:"text"`
}

// ExtractLinks parses an HTML document and returns its anchors in document order.
func ExtractLinks(r io.Reader) ([]Link, error) {
    root, err := html.Parse(r)
    if err != nil { return nil, err }
    var out []Link
    var walk func(*html.Node)
    walk = func(n *html.Node) {
        if n.Type == html.ElementNode && strings.EqualFold(n.Data, "a") {
            var href string
            for _, a := range n.Attr {
                if strings.EqualFold(a.Key, "href") { href = strings.TrimSpace(a.Val); break }
            }
            if href != "" { out = append(out, Link{Href: href, Text: nodeText(n)}) }
        }
        for c := n.FirstChild; c != nil; c = c.NextSibling { walk(c) }
    }
    walk(root)
    return out, nil
}

// ContactLinks returns the WhatsApp deep links in a rendered page.
func ContactLinks(r io.Reader) ([]Link, error) {
    all, err := ExtractLinks(r)
    if err != nil { return nil, err }
    var out []Link
    for _, l := range all {
        if u, err := url.Parse(l.Href); err == nil && u.Host == "wa.me" { out = append(out, l) }
    }
    return out, nil
}

func nodeText(n *html.Node) string {
    var b strings.Builder
    var rec func(*html.Node)
    rec = func(x *html.Node) {
        if x.Type == html.TextNode { b.WriteString(x.Data) }
        for c := x.FirstChild; c != nil; c = c.NextSibling { rec(c) }
    }
    rec(n)
    return strings.Join(strings.Fields(b.String()), " ")
}
