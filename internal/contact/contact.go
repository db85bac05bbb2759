// Package contact describes the human contact channel every consultation
// reply points back to, and builds WhatsApp deep links for it.
package contact

import (
    "fmt"
    "net/url"
    "strings"
)

const waBase = "https://wa.me/"

type Channel struct {
    Phone        string // digits only, international format without "+"
    Owner        string
    Organization string
}

func Default() Channel {
    return Channel{Phone: "2349033597562", Owner: "Uncle Blessing", Organization: "Uncle Blessing Research Institute"}
}

// Display is the phone number as shown to visitors, e.g. "+2349033597562".
func (c Channel) Display() string {
    return "+" + strings.TrimPrefix(c.Phone, "+")
}

// Link returns a deep link with a prefilled message. An empty service yields the
// general enquiry text.
func (c Channel) Link(service string) string {
    text := fmt.Sprintf("Hello %s, I need help with my research project.", c.Organization)
    if s := strings.TrimSpace(service); s != "" {
        text = fmt.Sprintf("Hello %s, I want to order your help with: \"%s\".", c.Organization, s)
    }
    return c.base() + "?text=" + escape(text)
}

// OrderLink is the navigation bar "Order Now" target.
func (c Channel) OrderLink() string {
    return c.base() + "?text=" + escape(fmt.Sprintf("Hello %s, I'm ready to order help with my project.", c.Organization))
}

func (c Channel) base() string {
    return waBase + strings.TrimPrefix(c.Phone, "+")
}

// escape matches browser encodeURIComponent for the characters that appear in
// prefilled messages: spaces become %20, not "+".
func escape(s string) string {
    return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
