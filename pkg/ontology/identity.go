// Package ontology defines the normalized, layered data model for agent
// execution traces: one AgentInstance identity, a forest of Steps carrying
// per-layer snapshots (perception, cognition, action, state, interaction,
// oversight), and the Run aggregate that owns them.
//
// Every entity is an open schema: typed fields cover the known shape, and an
// Extra map preserves unrecognized input keys through serialization round
// trips. Enumerations are closed sets; decoding an unknown tag fails with a
// ValidationError.
package ontology

import "time"

// AgentType classifies an agent.
type AgentType string

const (
	AgentTypeConversational AgentType = "conversational"
	AgentTypeTaskExecution  AgentType = "task-execution"
	AgentTypeReasoning      AgentType = "reasoning"
	AgentTypeLearning       AgentType = "learning"
	AgentTypeHybrid         AgentType = "hybrid"
	AgentTypeGeneral        AgentType = "general"
	AgentTypeDeliberative   AgentType = "deliberative"
	AgentTypeReactive       AgentType = "reactive"
)

func (t AgentType) Valid() bool {
	switch t {
	case AgentTypeConversational, AgentTypeTaskExecution, AgentTypeReasoning,
		AgentTypeLearning, AgentTypeHybrid, AgentTypeGeneral,
		AgentTypeDeliberative, AgentTypeReactive:
		return true
	}
	return false
}

// AgentDomain names the domain an agent operates in.
type AgentDomain string

const (
	AgentDomainCustomerSupport AgentDomain = "customer-support"
	AgentDomainFinance         AgentDomain = "finance"
	AgentDomainSoftwareDev     AgentDomain = "software-development"
	AgentDomainHealthcare      AgentDomain = "healthcare"
	AgentDomainEducation       AgentDomain = "education"
	AgentDomainGeneral         AgentDomain = "general"
)

func (d AgentDomain) Valid() bool {
	switch d {
	case AgentDomainCustomerSupport, AgentDomainFinance, AgentDomainSoftwareDev,
		AgentDomainHealthcare, AgentDomainEducation, AgentDomainGeneral:
		return true
	}
	return false
}

// AgentCapability is one named capability of an agent. Names are unique
// within the owning agent.
type AgentCapability struct {
	Name        string         `json:"name"`
	Version     string         `json:"version"`
	Parameters  map[string]any `json:"parameters,omitempty"`
	Constraints map[string]any `json:"constraints,omitempty"`
	Enabled     bool           `json:"enabled"`

	Extra map[string]any `json:"-"`
}

func (c AgentCapability) MarshalJSON() ([]byte, error) {
	type alias AgentCapability
	return marshalWithExtra(alias(c), c.Extra)
}

func (c *AgentCapability) UnmarshalJSON(data []byte) error {
	type alias AgentCapability
	v := alias{Version: "1.0.0", Enabled: true}
	extra, err := unmarshalWithExtra(data, &v)
	if err != nil {
		return err
	}
	*c = AgentCapability(v)
	c.Extra = extra
	return c.Validate()
}

func (c *AgentCapability) Validate() error {
	if c.Name == "" {
		return requiredErr("AgentCapability", "name")
	}
	return nil
}

// AgentConfiguration describes how the agent was configured for a run.
type AgentConfiguration struct {
	ModelID          string          `json:"model_id,omitempty"`
	ModelVersion     string          `json:"model_version,omitempty"`
	Parameters       map[string]any  `json:"parameters,omitempty"`
	ResourceLimits   map[string]any  `json:"resource_limits,omitempty"`
	SecuritySettings map[string]any  `json:"security_settings,omitempty"`
	FeatureFlags     map[string]bool `json:"feature_flags,omitempty"`

	Extra map[string]any `json:"-"`
}

func (c AgentConfiguration) MarshalJSON() ([]byte, error) {
	type alias AgentConfiguration
	return marshalWithExtra(alias(c), c.Extra)
}

func (c *AgentConfiguration) UnmarshalJSON(data []byte) error {
	type alias AgentConfiguration
	var v alias
	extra, err := unmarshalWithExtra(data, &v)
	if err != nil {
		return err
	}
	*c = AgentConfiguration(v)
	c.Extra = extra
	return nil
}

// AgentMetadata carries provenance for an agent instance.
type AgentMetadata struct {
	CreatedAt        time.Time      `json:"created_at"`
	CreatedBy        string         `json:"created_by"`
	Version          string         `json:"version"`
	Description      string         `json:"description,omitempty"`
	Tags             []string       `json:"tags,omitempty"`
	DocumentationURL string         `json:"documentation_url,omitempty"`
	License          string         `json:"license,omitempty"`
	CustomMetadata   map[string]any `json:"custom_metadata,omitempty"`

	Extra map[string]any `json:"-"`
}

func (m AgentMetadata) MarshalJSON() ([]byte, error) {
	type alias AgentMetadata
	return marshalWithExtra(alias(m), m.Extra)
}

func (m *AgentMetadata) UnmarshalJSON(data []byte) error {
	type alias AgentMetadata
	var v alias
	extra, err := unmarshalWithExtra(data, &v)
	if err != nil {
		return err
	}
	*m = AgentMetadata(v)
	m.Extra = extra
	return m.Validate()
}

func (m *AgentMetadata) Validate() error {
	if m.CreatedAt.IsZero() {
		return requiredErr("AgentMetadata", "created_at")
	}
	if m.CreatedBy == "" {
		return requiredErr("AgentMetadata", "created_by")
	}
	if m.Version == "" {
		return requiredErr("AgentMetadata", "version")
	}
	return nil
}

// AgentInstance is the identity of one agent within a run. The connector
// creates it once per run; it is immutable thereafter.
type AgentInstance struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	Types         []AgentType        `json:"types"`
	Domains       []AgentDomain      `json:"domains,omitempty"`
	Capabilities  []AgentCapability  `json:"capabilities,omitempty"`
	Configuration AgentConfiguration `json:"configuration"`
	Metadata      AgentMetadata      `json:"metadata"`
	ParentAgentID string             `json:"parent_agent_id,omitempty"`
	ChildAgentIDs []string           `json:"child_agent_ids,omitempty"`

	Extra map[string]any `json:"-"`
}

func (a AgentInstance) MarshalJSON() ([]byte, error) {
	type alias AgentInstance
	return marshalWithExtra(alias(a), a.Extra)
}

func (a *AgentInstance) UnmarshalJSON(data []byte) error {
	type alias AgentInstance
	var v alias
	extra, err := unmarshalWithExtra(data, &v)
	if err != nil {
		return err
	}
	*a = AgentInstance(v)
	a.Extra = extra
	return a.Validate()
}

func (a *AgentInstance) Validate() error {
	if a.ID == "" {
		return requiredErr("AgentInstance", "id")
	}
	if a.Name == "" {
		return requiredErr("AgentInstance", "name")
	}
	if len(a.Types) == 0 {
		return requiredErr("AgentInstance", "types")
	}
	for _, t := range a.Types {
		if !t.Valid() {
			return enumErr("AgentInstance", "types", string(t))
		}
	}
	for _, d := range a.Domains {
		if !d.Valid() {
			return enumErr("AgentInstance", "domains", string(d))
		}
	}
	for i := range a.Capabilities {
		if err := a.Capabilities[i].Validate(); err != nil {
			return err
		}
	}
	return a.Metadata.Validate()
}
