// Package catalogs defines the model records shared by the registry, the
// remote fetchers and the catalog assembler.
package catalogs

import "fmt"

// LLM is one invokable language model.
type LLM struct {
	// ModelID is unique within the provider's namespace only.
	ModelID   string        `json:"modelId" yaml:"model_id"`
	ModelName string        `json:"modelName" yaml:"model_name"`
	Provider  ModelProvider `json:"provider" yaml:"provider,omitempty"`

	// HostedID is the identifier the provider expects when invoking the model.
	HostedID     string `json:"hostedId" yaml:"hosted_id"`
	PlatformLink string `json:"platformLink" yaml:"platform_link"`
	ImageInput   bool   `json:"imageInput" yaml:"image_input"`

	MaxContext int64    `json:"maxContext,omitempty" yaml:"max_context,omitempty"`
	Pricing    *Pricing `json:"pricing,omitempty" yaml:"pricing,omitempty"`
}

// Pricing is descriptive only and never drives control flow.
type Pricing struct {
	Currency   string   `json:"currency" yaml:"currency"`
	Unit       string   `json:"unit" yaml:"unit"`
	InputCost  float64  `json:"inputCost" yaml:"input_cost"`
	OutputCost *float64 `json:"outputCost,omitempty" yaml:"output_cost,omitempty"`
}

// Key identifies a model across providers.
type Key struct {
	Provider ModelProvider
	ModelID  string
}

// String returns "provider/modelId".
func (k Key) String() string {
	return fmt.Sprintf("%s/%s", k.Provider, k.ModelID)
}

// Key returns the catalog identity of the model.
func (m LLM) Key() Key {
	return Key{Provider: m.Provider, ModelID: m.ModelID}
}

// Clone returns a deep copy of the model.
func (m LLM) Clone() LLM {
	if m.Pricing != nil {
		p := *m.Pricing
		if p.OutputCost != nil {
			cost := *p.OutputCost
			p.OutputCost = &cost
		}
		m.Pricing = &p
	}
	return m
}

// CloneAll returns deep copies of models, preserving order.
func CloneAll(models []LLM) []LLM {
	if models == nil {
		return nil
	}
	out := make([]LLM, len(models))
	for i, m := range models {
		out[i] = m.Clone()
	}
	return out
}
