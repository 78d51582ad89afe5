package catalogs

// Catalog is the merged, ordered list of models available to a session.
// Models are keyed by (provider, modelId); the first occurrence of a key wins.
// A Catalog is built per request and is not safe for concurrent mutation.
type Catalog struct {
	models []LLM
	index  map[Key]int
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{index: make(map[Key]int)}
}

// Add appends models in order, skipping keys already present, and returns
// the number of models added.
func (c *Catalog) Add(models ...LLM) int {
	added := 0
	for _, m := range models {
		key := m.Key()
		if _, exists := c.index[key]; exists {
			continue
		}
		c.index[key] = len(c.models)
		c.models = append(c.models, m.Clone())
		added++
	}
	return added
}

// Get returns the model with the given provider and id.
func (c *Catalog) Get(provider ModelProvider, modelID string) (LLM, bool) {
	i, ok := c.index[Key{Provider: provider, ModelID: modelID}]
	if !ok {
		return LLM{}, false
	}
	return c.models[i].Clone(), true
}

// Models returns a copy of every model in insertion order.
func (c *Catalog) Models() []LLM {
	out := CloneAll(c.models)
	if out == nil {
		return []LLM{}
	}
	return out
}

// ByProvider returns the models of one provider in insertion order.
func (c *Catalog) ByProvider(provider ModelProvider) []LLM {
	out := []LLM{}
	for _, m := range c.models {
		if m.Provider == provider {
			out = append(out, m.Clone())
		}
	}
	return out
}

// Providers returns the providers present, in order of first appearance.
func (c *Catalog) Providers() []ModelProvider {
	seen := make(map[ModelProvider]bool)
	out := []ModelProvider{}
	for _, m := range c.models {
		if !seen[m.Provider] {
			seen[m.Provider] = true
			out = append(out, m.Provider)
		}
	}
	return out
}

// Len returns the number of models.
func (c *Catalog) Len() int {
	return len(c.models)
}
