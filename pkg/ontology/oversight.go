package ontology

import "time"

// AnomalyType classifies a detected anomaly.
type AnomalyType string

const (
	AnomalyBehavioral  AnomalyType = "behavioral"
	AnomalyPerformance AnomalyType = "performance"
	AnomalyResource    AnomalyType = "resource"
	AnomalySecurity    AnomalyType = "security"
	AnomalyCompliance  AnomalyType = "compliance"
	AnomalyDataQuality AnomalyType = "data-quality"
	AnomalySystem      AnomalyType = "system"
)

func (t AnomalyType) Valid() bool {
	switch t {
	case AnomalyBehavioral, AnomalyPerformance, AnomalyResource,
		AnomalySecurity, AnomalyCompliance, AnomalyDataQuality, AnomalySystem:
		return true
	}
	return false
}

// RiskLevel grades severity and urgency.
type RiskLevel string

const (
	RiskCritical RiskLevel = "critical"
	RiskHigh     RiskLevel = "high"
	RiskMedium   RiskLevel = "medium"
	RiskLow      RiskLevel = "low"
	RiskMinimal  RiskLevel = "minimal"
)

func (l RiskLevel) Valid() bool {
	switch l {
	case RiskCritical, RiskHigh, RiskMedium, RiskLow, RiskMinimal:
		return true
	}
	return false
}

// InterventionType classifies how oversight intervened.
type InterventionType string

const (
	InterventionHumanReview           InterventionType = "human-review"
	InterventionAutomaticCorrection   InterventionType = "automatic-correction"
	InterventionPauseExecution        InterventionType = "pause-execution"
	InterventionRollback              InterventionType = "rollback"
	InterventionParameterAdjustment   InterventionType = "parameter-adjustment"
	InterventionCapabilityRestriction InterventionType = "capability-restriction"
	InterventionShutdown              InterventionType = "shutdown"
)

func (t InterventionType) Valid() bool {
	switch t {
	case InterventionHumanReview, InterventionAutomaticCorrection,
		InterventionPauseExecution, InterventionRollback,
		InterventionParameterAdjustment, InterventionCapabilityRestriction,
		InterventionShutdown:
		return true
	}
	return false
}

// Anomaly is a detected deviation from expected behavior. In this version it
// is a data container populated by external detectors, not computed here.
type Anomaly struct {
	ID                       string           `json:"id"`
	Type                     AnomalyType      `json:"type"`
	Severity                 RiskLevel        `json:"severity"`
	DetectedAt               time.Time        `json:"detected_at"`
	Component                string           `json:"component"`
	Description              string           `json:"description"`
	Evidence                 []map[string]any `json:"evidence"`
	Confidence               float64          `json:"confidence"`
	FalsePositiveProbability float64          `json:"false_positive_probability"`
	RelatedAnomalies         []string         `json:"related_anomalies,omitempty"`

	Extra map[string]any `json:"-"`
}

func (a Anomaly) MarshalJSON() ([]byte, error) {
	type alias Anomaly
	return marshalWithExtra(alias(a), a.Extra)
}

func (a *Anomaly) UnmarshalJSON(data []byte) error {
	type alias Anomaly
	var v alias
	extra, err := unmarshalWithExtra(data, &v)
	if err != nil {
		return err
	}
	*a = Anomaly(v)
	a.Extra = extra
	return a.Validate()
}

func (a *Anomaly) Validate() error {
	if a.ID == "" {
		return requiredErr("Anomaly", "id")
	}
	if !a.Type.Valid() {
		return enumErr("Anomaly", "type", string(a.Type))
	}
	if !a.Severity.Valid() {
		return enumErr("Anomaly", "severity", string(a.Severity))
	}
	if a.DetectedAt.IsZero() {
		return requiredErr("Anomaly", "detected_at")
	}
	if a.Component == "" {
		return requiredErr("Anomaly", "component")
	}
	return nil
}

// Risk is an identified risk to the run.
type Risk struct {
	ID                 string           `json:"id"`
	Name               string           `json:"name"`
	Description        string           `json:"description"`
	Level              RiskLevel        `json:"level"`
	Probability        float64          `json:"probability"`
	Impact             float64          `json:"impact"`
	RiskScore          float64          `json:"risk_score"`
	AffectedComponents []string         `json:"affected_components"`
	MitigationOptions  []map[string]any `json:"mitigation_options,omitempty"`
	MonitoringRequired bool             `json:"monitoring_required"`

	Extra map[string]any `json:"-"`
}

func (r Risk) MarshalJSON() ([]byte, error) {
	type alias Risk
	return marshalWithExtra(alias(r), r.Extra)
}

func (r *Risk) UnmarshalJSON(data []byte) error {
	type alias Risk
	v := alias{MonitoringRequired: true}
	extra, err := unmarshalWithExtra(data, &v)
	if err != nil {
		return err
	}
	*r = Risk(v)
	r.Extra = extra
	return r.Validate()
}

func (r *Risk) Validate() error {
	if r.ID == "" {
		return requiredErr("Risk", "id")
	}
	if r.Name == "" {
		return requiredErr("Risk", "name")
	}
	if !r.Level.Valid() {
		return enumErr("Risk", "level", string(r.Level))
	}
	return nil
}

// HumanReviewRequest asks a human to weigh in before the agent proceeds.
type HumanReviewRequest struct {
	ID              string           `json:"id"`
	Timestamp       time.Time        `json:"timestamp"`
	Urgency         RiskLevel        `json:"urgency"`
	Reason          string           `json:"reason"`
	Context         map[string]any   `json:"context"`
	DecisionOptions []map[string]any `json:"decision_options"`
	Timeout         *float64         `json:"timeout,omitempty"`
	AssignedTo      string           `json:"assigned_to,omitempty"`
	Status          string           `json:"status"`

	Extra map[string]any `json:"-"`
}

func (h HumanReviewRequest) MarshalJSON() ([]byte, error) {
	type alias HumanReviewRequest
	return marshalWithExtra(alias(h), h.Extra)
}

func (h *HumanReviewRequest) UnmarshalJSON(data []byte) error {
	type alias HumanReviewRequest
	v := alias{Status: "pending"}
	extra, err := unmarshalWithExtra(data, &v)
	if err != nil {
		return err
	}
	*h = HumanReviewRequest(v)
	h.Extra = extra
	return h.Validate()
}

func (h *HumanReviewRequest) Validate() error {
	if h.ID == "" {
		return requiredErr("HumanReviewRequest", "id")
	}
	if h.Timestamp.IsZero() {
		return requiredErr("HumanReviewRequest", "timestamp")
	}
	if !h.Urgency.Valid() {
		return enumErr("HumanReviewRequest", "urgency", string(h.Urgency))
	}
	if h.Reason == "" {
		return requiredErr("HumanReviewRequest", "reason")
	}
	return nil
}

// InterventionAction records an automated intervention taken by oversight.
type InterventionAction struct {
	ID                string           `json:"id"`
	Type              InterventionType `json:"type"`
	Trigger           string           `json:"trigger"`
	Timestamp         time.Time        `json:"timestamp"`
	TargetComponent   string           `json:"target_component"`
	Parameters        map[string]any   `json:"parameters"`
	ExpectedOutcome   string           `json:"expected_outcome"`
	ActualOutcome     string           `json:"actual_outcome,omitempty"`
	Success           *bool            `json:"success,omitempty"`
	RollbackAvailable bool             `json:"rollback_available"`

	Extra map[string]any `json:"-"`
}

func (i InterventionAction) MarshalJSON() ([]byte, error) {
	type alias InterventionAction
	return marshalWithExtra(alias(i), i.Extra)
}

func (i *InterventionAction) UnmarshalJSON(data []byte) error {
	type alias InterventionAction
	var v alias
	extra, err := unmarshalWithExtra(data, &v)
	if err != nil {
		return err
	}
	*i = InterventionAction(v)
	i.Extra = extra
	return i.Validate()
}

func (i *InterventionAction) Validate() error {
	if i.ID == "" {
		return requiredErr("InterventionAction", "id")
	}
	if !i.Type.Valid() {
		return enumErr("InterventionAction", "type", string(i.Type))
	}
	if i.Trigger == "" {
		return requiredErr("InterventionAction", "trigger")
	}
	if i.Timestamp.IsZero() {
		return requiredErr("InterventionAction", "timestamp")
	}
	if i.TargetComponent == "" {
		return requiredErr("InterventionAction", "target_component")
	}
	return nil
}

// OversightSnapshot is the oversight layer at one point in time.
type OversightSnapshot struct {
	Timestamp           time.Time            `json:"timestamp"`
	ActiveAnomalies     []Anomaly            `json:"active_anomalies,omitempty"`
	CurrentRisks        []Risk               `json:"current_risks,omitempty"`
	PerformanceSummary  map[string]float64   `json:"performance_summary,omitempty"`
	PendingReviews      []HumanReviewRequest `json:"pending_reviews,omitempty"`
	RecentInterventions []InterventionAction `json:"recent_interventions,omitempty"`
	ComplianceStatus    map[string]bool      `json:"compliance_status,omitempty"`
	OversightHealth     float64              `json:"oversight_health"`
	Recommendations     []string             `json:"recommendations,omitempty"`

	Extra map[string]any `json:"-"`
}

func (s OversightSnapshot) MarshalJSON() ([]byte, error) {
	type alias OversightSnapshot
	return marshalWithExtra(alias(s), s.Extra)
}

func (s *OversightSnapshot) UnmarshalJSON(data []byte) error {
	type alias OversightSnapshot
	var v alias
	extra, err := unmarshalWithExtra(data, &v)
	if err != nil {
		return err
	}
	*s = OversightSnapshot(v)
	s.Extra = extra
	return s.Validate()
}

func (s *OversightSnapshot) Validate() error {
	if s.Timestamp.IsZero() {
		return requiredErr("OversightSnapshot", "timestamp")
	}
	return nil
}
