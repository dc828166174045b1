package entity

import (
	"strings"
	"time"

	"github.com/homechores/chorelog/pkg/validation"
)

// Frequency is how often a task recurs. The wire values are the ones the
// mobile clients already send.
type Frequency string

const (
	FrequencyDaily      Frequency = "diaria"
	FrequencyWeekly     Frequency = "semanal"
	FrequencyMonthly    Frequency = "mensal"
	FrequencyYearly     Frequency = "anual"
	FrequencyOccasional Frequency = "ocasional"
)

type Difficulty string

const (
	DifficultyVeryEasy Difficulty = "muito_facil"
	DifficultyEasy     Difficulty = "facil"
	DifficultyMedium   Difficulty = "medio"
	DifficultyHard     Difficulty = "dificil"
	DifficultyVeryHard Difficulty = "muito_dificil"
)

type Status string

const (
	StatusPending    Status = "pendente"
	StatusCompleted  Status = "concluida"
	StatusInProgress Status = "em_andamento"
)

// Task is a recurring chore definition. CreatedBy is established at creation
// and never reassigned; LastCompletedDate is normally written back by the
// execution ledger, not by the owner directly.
type Task struct {
	ID                string     `json:"id"`
	Name              string     `json:"name" validate:"required,min=3,max=100"`
	Frequency         Frequency  `json:"frequency" validate:"required,oneof=diaria semanal mensal anual ocasional"`
	Difficulty        Difficulty `json:"difficulty" validate:"required,oneof=muito_facil facil medio dificil muito_dificil"`
	CreatedBy         string     `json:"createdBy"`
	NextDueDate       *time.Time `json:"nextDueDate,omitempty"`
	LastCompletedDate *time.Time `json:"lastCompletedDate,omitempty"`
	Status            Status     `json:"status" validate:"required,oneof=pendente concluida em_andamento"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// Normalize trims the name and applies the enum defaults for empty fields.
func (t *Task) Normalize() {
	t.Name = strings.TrimSpace(t.Name)
	if t.Frequency == "" {
		t.Frequency = FrequencyWeekly
	}
	if t.Difficulty == "" {
		t.Difficulty = DifficultyMedium
	}
	if t.Status == "" {
		t.Status = StatusPending
	}
}

// Validate returns every violated field constraint, nil when the task is valid.
func (t *Task) Validate() []string {
	return validation.Struct(t)
}
