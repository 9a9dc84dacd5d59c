package chat

import (
	"errors"
	"net/url"
	"regexp"
	"strings"
)

// ErrProviderUnresolved is returned when no endpoint can be derived for a model.
var ErrProviderUnresolved = errors.New("no chat endpoint known for model; set ai.url")

// CompletionsPath is the path suffix every supported endpoint ends with.
const CompletionsPath = "/chat/completions"

// Provider maps a model-name prefix to its chat-completions endpoint.
type Provider struct {
	Prefix string
	Base   string
	Path   string
}

// Endpoint returns the full chat-completions URL for the provider.
func (p Provider) Endpoint() string {
	return p.Base + p.Path
}

// Providers is matched in order against the lowercased model name.
var Providers = []Provider{
	{Prefix: "moonshot", Base: "https://api.moonshot.cn", Path: "/v1/chat/completions"},
	{Prefix: "kimi", Base: "https://api.moonshot.cn", Path: "/v1/chat/completions"},
	{Prefix: "qwen", Base: "https://dashscope.aliyuncs.com", Path: "/compatible-mode/v1/chat/completions"},
	{Prefix: "gpt", Base: "https://api.openai.com", Path: "/v1/chat/completions"},
	{Prefix: "o1", Base: "https://api.openai.com", Path: "/v1/chat/completions"},
	{Prefix: "o3", Base: "https://api.openai.com", Path: "/v1/chat/completions"},
	{Prefix: "o4", Base: "https://api.openai.com", Path: "/v1/chat/completions"},
	{Prefix: "gemini", Base: "https://generativelanguage.googleapis.com", Path: "/v1beta/openai/chat/completions"},
	{Prefix: "deepseek", Base: "https://api.deepseek.com", Path: "/chat/completions"},
}

// versionSegment matches a trailing API version such as /v1, /v1beta or /v2alpha1.
var versionSegment = regexp.MustCompile(`/v\d+[a-z0-9]*$`)

// LookupProvider returns the first provider whose prefix matches model.
func LookupProvider(model string) (Provider, bool) {
	model = strings.ToLower(strings.TrimSpace(model))
	if model == "" {
		return Provider{}, false
	}
	for _, p := range Providers {
		if strings.HasPrefix(model, p.Prefix) {
			return p, true
		}
	}
	return Provider{}, false
}

// ValidURL reports whether raw is an absolute http(s) URL with a host.
func ValidURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// NormalizeURL completes an explicit base URL to a chat-completions endpoint.
// URLs already ending in the completions path are returned unchanged; URLs
// ending in an API version segment get only the completions suffix.
func NormalizeURL(raw string) string {
	u := strings.TrimRight(strings.TrimSpace(raw), "/")

	switch {
	case strings.HasSuffix(u, CompletionsPath):
		return u
	case versionSegment.MatchString(u), strings.HasSuffix(u, "/openai"):
		return u + CompletionsPath
	default:
		return u + "/v1" + CompletionsPath
	}
}

// ResolveEndpoint returns the chat-completions URL for model. A valid
// explicitURL wins over the provider table; an invalid one is ignored.
func ResolveEndpoint(model, explicitURL string) (string, error) {
	if strings.TrimSpace(explicitURL) != "" && ValidURL(explicitURL) {
		return NormalizeURL(explicitURL), nil
	}

	p, ok := LookupProvider(model)
	if !ok {
		return "", ErrProviderUnresolved
	}
	return p.Endpoint(), nil
}
