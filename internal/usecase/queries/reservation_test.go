//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"booking-platform/internal/domain/business"
	"booking-platform/internal/domain/reservation"
	"booking-platform/internal/domain/user"
	"booking-platform/internal/infra"
	"booking-platform/internal/usecase/queries"
	"booking-platform/tests/common/builder"
	queriesmock "booking-platform/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReservationQueriesTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	reservations *queriesmock.MockReservationReadStore
	businesses   *queriesmock.MockBusinessReadStore
	queries      queries.ReservationQueries

	ownerID  uuid.UUID
	clientID uuid.UUID
	view     *queries.ReservationView
}

func TestReservationQueriesTestSuite(t *testing.T) {
	suite.Run(t, new(ReservationQueriesTestSuite))
}

func (s *ReservationQueriesTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.reservations = queriesmock.NewMockReservationReadStore(s.ctrl)
	s.businesses = queriesmock.NewMockBusinessReadStore(s.ctrl)
	s.queries = queries.NewReservationQueries(s.reservations, s.businesses)

	s.ownerID = uuid.New()
	s.clientID = uuid.New()
	s.view = builder.NewReservationBuilder().With(func(b *builder.ReservationBuilder) { b.ClientID = &s.clientID }).BuildReadModel()
	s.view.BusinessOwnerID = s.ownerID
}

func (s *ReservationQueriesTestSuite) TestGetByID() {
	ctx := context.Background()
	guestView := builder.NewReservationBuilder().AsGuest().BuildReadModel()

	cases := []struct {
		name   string
		view   *queries.ReservationView
		viewer queries.Viewer
		errIs  error
	}{
		{name: "owner OK", view: s.view, viewer: queries.Viewer{UserID: s.ownerID, Role: user.RoleOwner}},
		{name: "client OK", view: s.view, viewer: queries.Viewer{UserID: s.clientID, Role: user.RoleClient}},
		{name: "admin OK", view: s.view, viewer: queries.Viewer{UserID: uuid.New(), Role: user.RoleAdmin}},
		{name: "other user NG", view: s.view, viewer: queries.Viewer{UserID: uuid.New(), Role: user.RoleClient}, errIs: queries.ErrReservationAccess},
		{name: "anonymous is told not found", view: s.view, viewer: queries.Viewer{}, errIs: reservation.ErrReservationNotFound},
		{name: "guest email matches case-insensitively", view: guestView, viewer: queries.Viewer{GuestEmail: " JAMIE@example.com "}},
		{name: "wrong guest email NG", view: guestView, viewer: queries.Viewer{GuestEmail: "other@example.com"}, errIs: reservation.ErrReservationNotFound},
		{name: "guest email cannot open registered reservation", view: s.view, viewer: queries.Viewer{GuestEmail: "client@example.com"}, errIs: reservation.ErrReservationNotFound},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.reservations.EXPECT().FindByID(gomock.Any(), tc.view.ID).Return(tc.view, nil)

			got, err := s.queries.GetByID(ctx, tc.viewer, tc.view.ID)
			if tc.errIs != nil {
				s.ErrorIs(err, tc.errIs)
				s.Nil(got)
				return
			}
			s.Require().NoError(err)
			s.Equal(tc.view.ID, got.ID)
		})
	}

	s.Run("store not found maps to domain error", func() {
		id := uuid.New()
		s.reservations.EXPECT().FindByID(gomock.Any(), id).Return(nil, infra.WrapRepoErr("no row", nil, infra.KindNotFound))

		_, err := s.queries.GetByIDSystem(ctx, id)
		s.ErrorIs(err, reservation.ErrReservationNotFound)
	})
}

func (s *ReservationQueriesTestSuite) TestListByBusiness() {
	ctx := context.Background()
	businessID := uuid.New()
	bizView := &queries.BusinessView{ID: businessID, OwnerID: s.ownerID}

	rows := make([]*queries.ReservationView, 3)
	for i := range rows {
		rows[i] = builder.NewReservationBuilder().WithDateTime(builder.MondayAt(9+i, 0, nil)).BuildReadModel()
	}

	s.Run("owner pages with a cursor", func() {
		s.businesses.EXPECT().FindByID(gomock.Any(), businessID).Return(bizView, nil)
		s.reservations.EXPECT().ListByBusiness(gomock.Any(), businessID, gomock.Nil(), gomock.Nil(), gomock.Nil(), int32(3)).Return(rows, nil)

		page, err := s.queries.ListByBusiness(ctx, queries.Viewer{UserID: s.ownerID, Role: user.RoleOwner}, queries.ListByBusinessRequest{
			BusinessID: businessID,
			Limit:      2,
		})
		s.Require().NoError(err)
		s.Len(page.Items, 2)
		s.Require().NotNil(page.NextCursor)

		k, err := queries.ParseKeyset(page.NextCursor.After)
		s.Require().NoError(err)
		s.Equal(rows[1].ID, k.ID)
		s.True(rows[1].DateTime.Equal(k.At))
	})

	s.Run("last page has no cursor", func() {
		s.businesses.EXPECT().FindByID(gomock.Any(), businessID).Return(bizView, nil)
		s.reservations.EXPECT().ListByBusiness(gomock.Any(), businessID, gomock.Nil(), gomock.Nil(), gomock.Nil(), int32(21)).Return(rows, nil)

		page, err := s.queries.ListByBusiness(ctx, queries.Viewer{UserID: uuid.New(), Role: user.RoleAdmin}, queries.ListByBusinessRequest{BusinessID: businessID})
		s.Require().NoError(err)
		s.Len(page.Items, 3)
		s.Nil(page.NextCursor)
	})

	s.Run("non owner NG", func() {
		s.businesses.EXPECT().FindByID(gomock.Any(), businessID).Return(bizView, nil)

		_, err := s.queries.ListByBusiness(ctx, queries.Viewer{UserID: s.clientID, Role: user.RoleClient}, queries.ListByBusinessRequest{BusinessID: businessID})
		s.ErrorIs(err, queries.ErrBusinessAccess)
	})

	s.Run("inverted range NG", func() {
		s.businesses.EXPECT().FindByID(gomock.Any(), businessID).Return(bizView, nil)
		from := builder.MondayAt(12, 0, nil)
		to := from.Add(-time.Hour)

		_, err := s.queries.ListByBusiness(ctx, queries.Viewer{UserID: s.ownerID}, queries.ListByBusinessRequest{BusinessID: businessID, From: &from, To: &to})
		s.ErrorIs(err, queries.ErrInvalidRange)
	})

	s.Run("bad cursor NG", func() {
		s.businesses.EXPECT().FindByID(gomock.Any(), businessID).Return(bizView, nil)

		_, err := s.queries.ListByBusiness(ctx, queries.Viewer{UserID: s.ownerID}, queries.ListByBusinessRequest{
			BusinessID: businessID,
			Cursor:     &queries.Cursor{After: "%%%"},
		})
		s.ErrorIs(err, queries.ErrInvalidCursor)
	})

	s.Run("unknown business NG", func() {
		s.businesses.EXPECT().FindByID(gomock.Any(), businessID).Return(nil, infra.WrapRepoErr("no row", nil, infra.KindNotFound))

		_, err := s.queries.ListByBusiness(ctx, queries.Viewer{UserID: s.ownerID}, queries.ListByBusinessRequest{BusinessID: businessID})
		s.ErrorIs(err, business.ErrBusinessNotFound)
	})
}

func (s *ReservationQueriesTestSuite) TestListByClient() {
	ctx := context.Background()

	s.Run("own reservations", func() {
		s.reservations.EXPECT().ListByClient(gomock.Any(), s.clientID, gomock.Nil(), int32(11)).Return([]*queries.ReservationView{s.view}, nil)

		page, err := s.queries.ListByClient(ctx, queries.Viewer{UserID: s.clientID}, queries.ListByClientRequest{ClientID: &s.clientID, Limit: 10})
		s.Require().NoError(err)
		s.Len(page.Items, 1)
	})

	s.Run("someone else's NG", func() {
		other := uuid.New()
		_, err := s.queries.ListByClient(ctx, queries.Viewer{UserID: s.clientID}, queries.ListByClientRequest{ClientID: &other})
		s.ErrorIs(err, queries.ErrReservationAccess)
	})

	s.Run("guest email listing is admin only", func() {
		_, err := s.queries.ListByClient(ctx, queries.Viewer{UserID: s.clientID}, queries.ListByClientRequest{GuestEmail: "jamie@example.com"})
		s.ErrorIs(err, queries.ErrReservationAccess)

		s.reservations.EXPECT().ListByGuestEmail(gomock.Any(), "jamie@example.com", gomock.Nil(), int32(21)).Return(nil, nil)
		_, err = s.queries.ListByClient(ctx, queries.Viewer{UserID: uuid.New(), Role: user.RoleAdmin}, queries.ListByClientRequest{GuestEmail: " Jamie@Example.com "})
		s.NoError(err)
	})

	s.Run("no filter NG", func() {
		_, err := s.queries.ListByClient(ctx, queries.Viewer{UserID: s.clientID}, queries.ListByClientRequest{})
		s.ErrorIs(err, queries.ErrClientFilterMissing)
	})
}

func TestCursor(t *testing.T) {
	at := time.Date(2030, 1, 7, 10, 0, 0, 123456000, time.UTC)
	id := uuid.New()

	got, err := queries.ParseKeyset(queries.Keyset{At: at, ID: id}.Encode())
	require.NoError(t, err)
	assert.True(t, at.Equal(got.At))
	assert.Equal(t, id, got.ID)

	// "k2.1.x" and a k1 token with a bad id, both base64url
	for _, bad := range []string{"", "!!", "azIuMS54", "azEuMTIzLm5vdC1hLXV1aWQ"} {
		_, err := queries.ParseKeyset(bad)
		assert.Error(t, err, bad)
	}

	assert.Equal(t, queries.DefaultListLimit, queries.ClampLimit(0))
	assert.Equal(t, queries.DefaultListLimit, queries.ClampLimit(-3))
	assert.Equal(t, queries.MaxListLimit, queries.ClampLimit(1000))
	assert.Equal(t, 7, queries.ClampLimit(7))
}
