package models

// TriggerKind is the closed set of webhook trigger variants.
type TriggerKind string

const (
	// TriggerDynamic takes its instruction verbatim from the caller at fire time.
	TriggerDynamic TriggerKind = "Dynamic"
	// TriggerTextBased substitutes a stored ${...} template with the fire payload.
	TriggerTextBased TriggerKind = "TextBased"
)

// Valid reports whether k is one of the known trigger kinds.
func (k TriggerKind) Valid() bool {
	switch k {
	case TriggerDynamic, TriggerTextBased:
		return true
	}
	return false
}

// ContextEntry is a labeled supplementary instruction fragment attached to a
// trigger; forwarded verbatim to the external scheduler.
type ContextEntry struct {
	Label   string `json:"label"`
	Content string `json:"content"`
}

// TriggerModel defines a registered webhook trigger.
type TriggerModel struct {
	Base
	UserID   string         `json:"-"        gorm:"index;not null"`
	Title    string         `json:"title"    gorm:"not null"`
	Kind     TriggerKind    `json:"kind"     gorm:"type:varchar(16);not null"`
	Template string         `json:"template" gorm:"type:text"`
	Context  []ContextEntry `json:"context"  gorm:"type:longtext;serializer:json"`

	Runs []TriggerRunModel `json:"runs,omitempty" gorm:"foreignKey:TriggerID;constraint:OnDelete:CASCADE"`
}

func (TriggerModel) TableName() string { return "triggers" }

// TriggerRunModel is the durable audit entry for one firing attempt. Written
// exactly once per attempt, never updated.
type TriggerRunModel struct {
	Base
	TriggerID string                 `json:"trigger_id" gorm:"index;not null"`
	Metadata  map[string]interface{} `json:"metadata"   gorm:"type:longtext;serializer:json"`
}

func (TriggerRunModel) TableName() string { return "trigger_runs" }
