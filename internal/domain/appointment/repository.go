package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

// Store é o contrato do armazenamento durável de agendamentos.
// Não faz validação de negócio (papel do coordinator), para que a
// implementação seja trocável (memória nos testes, Postgres em produção).
type Store interface {
	// FindOverlapping retorna agendamentos pending/confirmed do barbeiro
	// cujo [StartTime, EndTime) cruza [start, end), ordenados por início.
	FindOverlapping(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// Save é upsert puro; quem garante ausência de conflito é o lock
	// por barbeiro no coordinator.
	Save(ctx context.Context, ap *models.Appointment) error

	// Get retorna ErrAppointmentNotFound quando o id não existe.
	Get(ctx context.Context, id string) (*models.Appointment, error)

	// ListForPeriod alimenta as listagens do painel (dia / mês).
	ListForPeriod(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)
}

// WindowProvider entrega as janelas de expediente de um barbeiro num dia.
// O core trata isso como configuração opaca: não valida nem cacheia.
type WindowProvider interface {
	GetWorkingWindows(
		ctx context.Context,
		barberID uint,
		date time.Time,
	) ([]Window, error)
}

// Directory resolve os colaboradores envolvidos num agendamento.
type Directory interface {
	GetBarbershopByID(ctx context.Context, id uint) (*models.Barbershop, error)

	GetBarber(
		ctx context.Context,
		barbershopID uint,
		barberID uint,
	) (*models.User, error)

	GetProduct(
		ctx context.Context,
		barbershopID uint,
		productID uint,
	) (*models.BarberProduct, error)

	GetOrCreateClient(
		ctx context.Context,
		barbershopID uint,
		name string,
		phone string,
		email string,
	) (*models.Client, error)
}
