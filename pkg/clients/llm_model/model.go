package llm_model

import "time"

type Config struct {
	Addr        string        `json:"addr"`
	Model       string        `json:"llm_model"`
	Token       string        `json:"token"`
	Temperature float32       `json:"temperature"`
	MaxTokens   int           `json:"maxTokens"`
	Timeout     time.Duration `json:"timeout"`
}
