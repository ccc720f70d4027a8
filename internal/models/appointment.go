package models

import "time"

// Agendamento: nunca é removido fisicamente. Cancelamento é status,
// preservando histórico e relatórios.
type Appointment struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	BarbershopID uint       `gorm:"index" json:"barbershop_id"`
	Barbershop   Barbershop `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barbershop"`

	BarberID uint `gorm:"index:idx_appointments_barber_start,priority:1" json:"barber_id"`
	Barber   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barber"`

	ClientID uint   `json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	BarberProductID uint          `json:"barber_product_id"`
	BarberProduct   BarberProduct `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barber_product"`

	StartTime time.Time `gorm:"index:idx_appointments_barber_start,priority:2" json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	// Duração congelada no momento da criação; mudanças posteriores
	// no serviço não afetam agendamentos já criados.
	DurationMin int `json:"duration_min"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	Notes string `gorm:"size:255" json:"notes"`

	ConfirmedAt *time.Time `json:"confirmed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
