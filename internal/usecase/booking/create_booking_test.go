package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/notify"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

func validInput() CreateBookingInput {
	return CreateBookingInput{
		ShopID:        1,
		CustomerName:  "Maria Souza",
		CustomerPhone: "11999990000",
		CustomerEmail: "maria@example.com",
		Consent:       true,
		Date:          "2030-06-18",
		Time:          "10:00",
		ServiceIDs:    []uint{1},
	}
}

func createRepo() *fakeRepo {
	return &fakeRepo{
		shop:   testShop(),
		blocks: fullWeekBlocks(),
		services: []models.Service{
			{ID: 1, ShopID: 1, Name: "Corte", DurationMin: 45, Price: 25, Active: true},
		},
	}
}

func newCreateUC(repo *fakeRepo) (*CreateBooking, *fakeAuditor, *fakeNotifier) {
	auditor := &fakeAuditor{}
	notifier := &fakeNotifier{}
	return NewCreateBooking(repo, nil, auditor, notifier), auditor, notifier
}

func TestCreateBooking_Success(t *testing.T) {
	repo := createRepo()
	uc, auditor, notifier := newCreateUC(repo)

	b, err := uc.Execute(context.Background(), validInput())
	require.NoError(t, err)

	loc := timezone.Location(repo.shop.Timezone)

	// duração de 45 minutos reserva células cheias, mas o fim real é 10:45
	assert.Equal(t, "2030-06-18", b.BookingDate)
	assert.True(t, b.StartTime.Equal(time.Date(2030, 6, 18, 10, 0, 0, 0, loc)))
	assert.True(t, b.EndTime.Equal(time.Date(2030, 6, 18, 10, 45, 0, 0, loc)))
	assert.Equal(t, 45, b.TotalDurationMin)
	assert.Equal(t, 25.0, b.TotalPrice)
	assert.Equal(t, "pending", b.Status)

	// gravação atômica com itens congelados
	require.Len(t, repo.createdGroups, 1)
	group := repo.createdGroups[0]
	require.Len(t, group.Services, 1)
	assert.Equal(t, 25.0, group.Services[0].PriceAtBooking)
	assert.Equal(t, 45, group.Services[0].DurationAtBooking)

	// auditoria + notificação disparadas depois da gravação
	require.Len(t, auditor.events, 1)
	assert.Equal(t, "booking_created", auditor.events[0].Action)

	require.Len(t, notifier.payloads, 1)
	assert.Equal(t, notify.KindBookingCreated, notifier.payloads[0].Kind)
}

func TestCreateBooking_AutoAppliedModifierEntersTotals(t *testing.T) {
	repo := createRepo()
	repo.modifiers = []models.ServiceModifier{
		{
			ID: 10, ServiceID: 1, Name: "atendimento sênior",
			ConditionType: "age_range", ConditionValue: `{"min_age":60}`,
			DurationModifier: 15, PriceModifier: 10,
			AutoApply: true, Active: true,
		},
	}

	uc, _, _ := newCreateUC(repo)

	in := validInput()
	bd := time.Date(1960, 1, 1, 0, 0, 0, 0, time.UTC)
	in.BirthDate = &bd

	b, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)

	// 45 + 15 = 60 minutos; 25 + 10 = 35
	assert.Equal(t, 60, b.TotalDurationMin)
	assert.Equal(t, 35.0, b.TotalPrice)

	require.Len(t, repo.createdGroups, 1)
	require.Len(t, repo.createdGroups[0].Modifiers, 1)
	assert.Equal(t, uint(10), repo.createdGroups[0].Modifiers[0].ServiceModifierID)
	assert.Equal(t, 15, repo.createdGroups[0].Modifiers[0].AppliedDuration)
}

func TestCreateBooking_SelectedModifierById(t *testing.T) {
	repo := createRepo()
	repo.modifiers = []models.ServiceModifier{
		{
			ID: 11, ServiceID: 1, Name: "adicional barba",
			ConditionType:    "manual",
			DurationModifier: 30, PriceModifier: 15,
			Active: true,
		},
	}

	uc, _, _ := newCreateUC(repo)

	in := validInput()
	in.ModifierIDs = []uint{11}

	b, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, 75, b.TotalDurationMin)
	assert.Equal(t, 40.0, b.TotalPrice)
}

func TestCreateBooking_UnknownModifierAbortsBeforePersisting(t *testing.T) {
	repo := createRepo()
	uc, _, _ := newCreateUC(repo)

	in := validInput()
	in.ModifierIDs = []uint{999}

	_, err := uc.Execute(context.Background(), in)

	assert.True(t, httperr.IsBusiness(err, "modifier_not_found"))
	assert.Empty(t, repo.createdGroups)
}

func TestCreateBooking_ValidationFailuresNeverPersist(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*CreateBookingInput)
		wantCode string
	}{
		{
			name:     "missing consent",
			mutate:   func(in *CreateBookingInput) { in.Consent = false },
			wantCode: "consent_required",
		},
		{
			name:     "missing name",
			mutate:   func(in *CreateBookingInput) { in.CustomerName = "  " },
			wantCode: "invalid_request",
		},
		{
			name:     "missing email",
			mutate:   func(in *CreateBookingInput) { in.CustomerEmail = "" },
			wantCode: "invalid_request",
		},
		{
			name:     "bad date",
			mutate:   func(in *CreateBookingInput) { in.Date = "18/06/2030" },
			wantCode: "invalid_date_or_time",
		},
		{
			name:     "past datetime",
			mutate:   func(in *CreateBookingInput) { in.Date = "2020-01-01" },
			wantCode: "too_soon",
		},
		{
			name:     "no services selected",
			mutate:   func(in *CreateBookingInput) { in.ServiceIDs = nil },
			wantCode: "invalid_request",
		},
		{
			name:     "unknown service",
			mutate:   func(in *CreateBookingInput) { in.ServiceIDs = []uint{42} },
			wantCode: "service_not_found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := createRepo()
			uc, auditor, notifier := newCreateUC(repo)

			in := validInput()
			tt.mutate(&in)

			_, err := uc.Execute(context.Background(), in)

			assert.True(t, httperr.IsBusiness(err, tt.wantCode), "got %v", err)
			assert.Empty(t, repo.createdGroups)
			assert.Empty(t, auditor.events)
			assert.Empty(t, notifier.payloads)
		})
	}
}

func TestCreateBooking_VerifierGate(t *testing.T) {
	repo := createRepo()
	auditor := &fakeAuditor{}
	notifier := &fakeNotifier{}
	verifier := &fakeVerifier{err: errors.New("expired")}

	uc := NewCreateBooking(repo, verifier, auditor, notifier)

	in := validInput()
	in.VerificationToken = "some-token"

	_, err := uc.Execute(context.Background(), in)

	assert.True(t, httperr.IsBusiness(err, "verification_failed"))
	assert.Empty(t, repo.createdGroups)
	require.Len(t, verifier.checks, 1)
	assert.Equal(t, "maria@example.com|some-token", verifier.checks[0])
}

func TestCreateBooking_OccupiedSlotIsRejected(t *testing.T) {
	repo := createRepo()
	loc := timezone.Location(repo.shop.Timezone)
	repo.bookings = []models.Booking{
		{
			ID: 1, ShopID: 1, Status: "confirmed",
			StartTime: time.Date(2030, 6, 18, 10, 0, 0, 0, loc),
			EndTime:   time.Date(2030, 6, 18, 11, 0, 0, 0, loc),
		},
	}

	uc, _, _ := newCreateUC(repo)

	_, err := uc.Execute(context.Background(), validInput())

	assert.True(t, httperr.IsBusiness(err, "slot_unavailable"))
	assert.Empty(t, repo.createdGroups)
}

func TestCreateBooking_CancelledBookingFreesTheSlot(t *testing.T) {
	repo := createRepo()
	loc := timezone.Location(repo.shop.Timezone)
	repo.bookings = []models.Booking{
		{
			ID: 1, ShopID: 1, Status: "cancelled",
			BookingDate: "2030-06-18",
			StartTime:   time.Date(2030, 6, 18, 10, 0, 0, 0, loc),
			EndTime:     time.Date(2030, 6, 18, 10, 45, 0, 0, loc),
		},
	}

	uc, _, _ := newCreateUC(repo)

	booked, err := uc.Execute(context.Background(), validInput())

	require.NoError(t, err)
	require.Len(t, repo.createdGroups, 1)
	assert.True(t, booked.StartTime.Equal(time.Date(2030, 6, 18, 10, 0, 0, 0, loc)))
	assert.Equal(t, "pending", booked.Status)
}

func TestCreateBooking_OffGridTimeIsRejected(t *testing.T) {
	repo := createRepo()
	uc, _, _ := newCreateUC(repo)

	in := validInput()
	in.Time = "10:15"

	_, err := uc.Execute(context.Background(), in)

	assert.True(t, httperr.IsBusiness(err, "slot_unavailable"))
}

func TestCreateBooking_ClosedDayIsRejected(t *testing.T) {
	repo := createRepo()
	repo.exceptions = map[string]*models.ScheduleException{
		"2030-06-18": {ShopID: 1, ExceptionDate: "2030-06-18", IsClosed: true},
	}

	uc, _, _ := newCreateUC(repo)

	_, err := uc.Execute(context.Background(), validInput())

	assert.True(t, httperr.IsBusiness(err, "slot_unavailable"))
}

func TestCreateBooking_UniqueViolationBecomesPersistenceFailure(t *testing.T) {
	repo := createRepo()
	repo.createErr = &pgconn.PgError{Code: "23505"}

	uc, auditor, notifier := newCreateUC(repo)

	_, err := uc.Execute(context.Background(), validInput())

	assert.True(t, httperr.IsBusiness(err, "persistence_failure"))
	assert.Empty(t, auditor.events)
	assert.Empty(t, notifier.payloads)
}

func TestCreateBooking_InTransactionConflictPropagates(t *testing.T) {
	repo := createRepo()
	repo.createErr = httperr.ErrBusiness("slot_unavailable")

	uc, _, _ := newCreateUC(repo)

	_, err := uc.Execute(context.Background(), validInput())

	assert.True(t, httperr.IsBusiness(err, "slot_unavailable"))
}

func TestCreateBooking_ViaLink(t *testing.T) {
	repo := createRepo()
	repo.link = &models.BookingLink{
		ID: 5, ShopID: 1, Token: "tok-123", Active: true,
	}

	uc, _, _ := newCreateUC(repo)

	in := validInput()
	in.ShopID = 0
	in.LinkToken = "tok-123"

	b, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, uint(1), b.ShopID)
	require.NotNil(t, b.BookingLinkID)
	assert.Equal(t, uint(5), *b.BookingLinkID)
}

func TestCreateBooking_ExhaustedLinkIsRejected(t *testing.T) {
	repo := createRepo()
	repo.link = &models.BookingLink{
		ID: 5, ShopID: 1, Token: "tok-123", Active: true,
		MaxUses: 3, CurrentUses: 3,
	}

	uc, _, _ := newCreateUC(repo)

	in := validInput()
	in.ShopID = 0
	in.LinkToken = "tok-123"

	_, err := uc.Execute(context.Background(), in)

	assert.True(t, httperr.IsBusiness(err, "invalid_link"))
	assert.Empty(t, repo.createdGroups)
}
