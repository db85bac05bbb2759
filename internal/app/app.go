// Package app wires configuration into the consultation components shared by
// the server and the CLI.
package app

import (
    "net/http"

    "github.com/sirupsen/logrus"

    "github.com/example/research-institute/internal/config"
    "github.com/example/research-institute/internal/consult"
    "github.com/example/research-institute/internal/providers/llm"
)

// NewConsultant builds the consultation client described by cfg. The
// credential is looked up in the environment on every call.
func NewConsultant(cfg *config.Config, log logrus.FieldLogger) *consult.Client {
    g := cfg.Gemini
    c := consult.New(cfg.Contact.Channel(), consult.EnvCredential(g.CredentialEnv...), func(apiKey string) (llm.Client, error) {
        return llm.New(g.Transport, apiKey, g.Target(), http.DefaultClient)
    })
    c.Model = g.Model
    c.Timeout = g.Timeout
    c.Log = log
    return c
}
