package gifts

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/angelmondragon/invitation-backend/pkg/clock"
	"github.com/angelmondragon/invitation-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/invitation-backend/pkg/errors"
	"github.com/angelmondragon/invitation-backend/pkg/logger"
	"github.com/angelmondragon/invitation-backend/pkg/metrics"
	"github.com/angelmondragon/invitation-backend/pkg/sheets"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixedStamp = "17/10/2026, 3:04:05 p. m."

var giftsHeader = []string{"id", "title", "store_url", "notes", "status", "claimed_by", "claimed_phone", "claimed_email", "claimed_at", "image_url", "type"}

type fixture struct {
	store *sheets.MemoryStore
	svc   Service
	reg   *prometheus.Registry
	logs  *bytes.Buffer
}

func newFixture(t *testing.T, giftRows ...[]string) *fixture {
	t.Helper()
	rows := append([][]string{giftsHeader}, giftRows...)
	store := sheets.NewMemoryStore(map[string][][]string{
		"Gifts":  rows,
		"Claims": {{"timestamp", "gift_id", "gift_title", "name", "phone", "email"}},
	})
	logs := &bytes.Buffer{}
	reg := prometheus.NewRegistry()
	svc, err := NewService(ServiceParams{
		Repo:    NewRepository(store),
		Clock:   clock.Fixed(time.Date(2026, 10, 17, 15, 4, 5, 0, time.UTC), time.UTC),
		Logger:  logger.New(logger.Options{ServiceName: "test", Output: logs}),
		Metrics: metrics.NewGiftMetrics(reg),
	})
	require.NoError(t, err)
	return &fixture{store: store, svc: svc, reg: reg, logs: logs}
}

func (f *fixture) claims() [][]string {
	return f.store.Rows("Claims")[1:]
}

// counter sums the samples of name whose labels include every pair in labels.
func (f *fixture) counter(t *testing.T, name string, labels map[string]string) float64 {
	t.Helper()
	mfs, err := f.reg.Gather()
	require.NoError(t, err)
	total := 0.0
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
	metricLoop:
		for _, m := range mf.GetMetric() {
			for key, value := range labels {
				found := false
				for _, pair := range m.GetLabel() {
					if pair.GetName() == key && pair.GetValue() == value {
						found = true
					}
				}
				if !found {
					continue metricLoop
				}
			}
			total += m.GetCounter().GetValue()
		}
	}
	return total
}

func TestNewServiceRequiresRepo(t *testing.T) {
	_, err := NewService(ServiceParams{})
	require.Error(t, err)
}

func TestListMapsRowsWithDefaults(t *testing.T) {
	f := newFixture(t,
		[]string{"g1", "Toaster", "https://shop/toaster", "", "", "", "", "", "", "https://img/1"},
		[]string{"g2", "Honeymoon fund", "", "any amount", "available", "", "", "", "", "", "Unlimited"},
		[]string{"g3", "Plates", "", "", "disqualified", "Ana", "300", "ana@example.com", "1/10/2026, 9:00:00 a. m.", "", "unique"},
		[]string{"g4", "Wine fund", "", "", "claimed", "Luis", "", "", "t0", "", "unlimited"},
	)

	list, err := f.svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 4)

	assert.Equal(t, "g1", list[0].ID)
	assert.Equal(t, enums.GiftStatusAvailable, list[0].Status)
	assert.Equal(t, enums.GiftKindUnique, list[0].Kind)
	assert.Equal(t, "https://img/1", list[0].ImageURL)
	assert.Equal(t, enums.GiftKindUnlimited, list[1].Kind)
	assert.Equal(t, "any amount", list[1].Notes)
	assert.Equal(t, enums.GiftStatusDisqualified, list[2].Status)
	assert.Equal(t, "Ana", list[2].ClaimedBy)
	assert.Equal(t, enums.GiftKindUnlimited, list[3].Kind)
	assert.Equal(t, enums.GiftStatusAvailable, list[3].Status)
	assert.Equal(t, "Luis", list[3].ClaimedBy)
	assert.NotContains(t, f.logs.String(), "unrecognized gift status")
}

func TestListWarnsOnUnrecognizedStatus(t *testing.T) {
	f := newFixture(t, []string{"g1", "Toaster", "", "", "reserved", "", "", "", "", "", "unique"})

	list, err := f.svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, enums.GiftStatus("reserved"), list[0].Status)
	assert.False(t, list[0].Status.Taken())
	assert.Contains(t, f.logs.String(), "unrecognized gift status")
	assert.Contains(t, f.logs.String(), `"status":"reserved"`)
}

func TestClaimUnlimitedStoredAsClaimed(t *testing.T) {
	original := []string{"g4", "Wine fund", "", "", "claimed", "Luis", "", "", "t0", "", "unlimited"}
	f := newFixture(t, original)

	require.NoError(t, f.svc.Claim(context.Background(), "g4", Claimant{Name: "Ana"}))
	assert.Equal(t, original, f.store.Rows("Gifts")[1])
	assert.Len(t, f.claims(), 1)
}

func TestListEmptySheet(t *testing.T) {
	f := newFixture(t)
	list, err := f.svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestClaimUniqueAvailable(t *testing.T) {
	f := newFixture(t,
		[]string{"g0", "Mixer", "", "", "available"},
		[]string{"g1", "Toaster", "https://shop/toaster", "", "available", "", "", "", "", "", "unique"},
	)

	err := f.svc.Claim(context.Background(), "g1", Claimant{Name: " Ana ", Phone: "3001234567", Email: "ana@example.com"})
	require.NoError(t, err)

	row := f.store.Rows("Gifts")[2]
	assert.Equal(t, "g1", row[0])
	assert.Equal(t, "Toaster", row[1])
	assert.Equal(t, "disqualified", row[4])
	assert.Equal(t, "Ana", row[5])
	assert.Equal(t, "3001234567", row[6])
	assert.Equal(t, "ana@example.com", row[7])
	assert.Equal(t, fixedStamp, row[8])
	assert.Equal(t, "unique", row[10])

	assert.Equal(t, []string{"available"}, f.store.Rows("Gifts")[1][4:])
	assert.Equal(t, [][]string{{fixedStamp, "g1", "Toaster", "Ana", "3001234567", "ana@example.com"}}, f.claims())
	assert.Equal(t, 1.0, f.counter(t, "gift_claims_total", map[string]string{"kind": "unique", "outcome": metrics.OutcomeClaimed}))
}

func TestClaimUniqueTakenIsRejected(t *testing.T) {
	for _, status := range []string{"claimed", "disqualified"} {
		t.Run(status, func(t *testing.T) {
			original := []string{"g1", "Toaster", "", "", status, "Luis", "", "", "t0"}
			f := newFixture(t, original)

			err := f.svc.Claim(context.Background(), "g1", Claimant{Name: "Ana"})
			require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeAlreadyClaimed), "got %v", err)
			assert.Equal(t, original, f.store.Rows("Gifts")[1])
			assert.Empty(t, f.claims())
			assert.Equal(t, 1.0, f.counter(t, "gift_claims_total", map[string]string{"outcome": metrics.OutcomeAlreadyClaimed}))
		})
	}
}

func TestClaimUnlimitedRepeats(t *testing.T) {
	original := []string{"g9", "Honeymoon fund", "", "", "available", "", "", "", "", "", "unlimited"}
	f := newFixture(t, original)

	names := []string{"Ana", "Luis", "Zoe"}
	for _, name := range names {
		require.NoError(t, f.svc.Claim(context.Background(), "g9", Claimant{Name: name}))
	}

	assert.Equal(t, original, f.store.Rows("Gifts")[1])
	claims := f.claims()
	require.Len(t, claims, len(names))
	for i, name := range names {
		assert.Equal(t, "g9", claims[i][1])
		assert.Equal(t, "Honeymoon fund", claims[i][2])
		assert.Equal(t, name, claims[i][3])
	}
}

func TestClaimUnknownGift(t *testing.T) {
	original := []string{"g1", "Toaster", "", "", "available"}
	f := newFixture(t, original)

	err := f.svc.Claim(context.Background(), "nope", Claimant{Name: "Ana"})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound), "got %v", err)
	assert.Equal(t, original, f.store.Rows("Gifts")[1])
	assert.Empty(t, f.claims())
}

func TestClaimDoesNotMatchHeaderRow(t *testing.T) {
	f := newFixture(t, []string{"g1", "Toaster"})
	err := f.svc.Claim(context.Background(), "id", Claimant{Name: "Ana"})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound), "got %v", err)
	assert.Equal(t, giftsHeader, f.store.Rows("Gifts")[0])
}

func TestClaimRequiresName(t *testing.T) {
	f := newFixture(t, []string{"g1", "Toaster"})
	err := f.svc.Claim(context.Background(), "g1", Claimant{Name: "   "})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation), "got %v", err)
}

func TestClaimSwallowsClaimsLogFailure(t *testing.T) {
	f := newFixture(t, []string{"g1", "Toaster", "", "", "available"})
	f.store.FailOn("append", "Claims", errors.New("quota exceeded"))

	require.NoError(t, f.svc.Claim(context.Background(), "g1", Claimant{Name: "Ana"}))
	assert.Equal(t, "disqualified", f.store.Rows("Gifts")[1][4])
	assert.Contains(t, f.logs.String(), "failed to append claims log row")
	assert.Contains(t, f.logs.String(), `"gift_id":"g1"`)
	assert.Equal(t, 1.0, f.counter(t, "claims_log_append_failures_total", nil))
}

func TestClaimStoreFailures(t *testing.T) {
	f := newFixture(t, []string{"g1", "Toaster", "", "", "available"})
	f.store.FailOn("read", "Gifts", errors.New("boom"))
	err := f.svc.Claim(context.Background(), "g1", Claimant{Name: "Ana"})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeStoreUnavailable), "got %v", err)
	require.ErrorIs(t, err, sheets.ErrStoreUnavailable)

	f.store.FailOn("read", "Gifts", nil)
	f.store.FailOn("update", "Gifts", errors.New("boom"))
	err = f.svc.Claim(context.Background(), "g1", Claimant{Name: "Ana"})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeStoreUnavailable), "got %v", err)
}

func TestUnclaimUniqueIsIdempotent(t *testing.T) {
	f := newFixture(t, []string{"g1", "Toaster", "url", "note", "disqualified", "Ana", "300", "ana@example.com", "t0", "img", "unique"})

	require.NoError(t, f.svc.Unclaim(context.Background(), "g1"))
	want := []string{"g1", "Toaster", "url", "note", "available", "", "", "", "", "img", "unique"}
	assert.Equal(t, want, f.store.Rows("Gifts")[1])

	require.NoError(t, f.svc.Unclaim(context.Background(), "g1"))
	assert.Equal(t, want, f.store.Rows("Gifts")[1])
	assert.Empty(t, f.claims())
}

func TestUnclaimUnlimitedIsNoop(t *testing.T) {
	original := []string{"g9", "Fund", "", "", "", "", "", "", "", "", "unlimited"}
	f := newFixture(t, original)
	f.store.FailOn("update", "Gifts", errors.New("must not be called"))

	require.NoError(t, f.svc.Unclaim(context.Background(), "g9"))
	assert.Equal(t, original, f.store.Rows("Gifts")[1])
	assert.Empty(t, f.claims())
	assert.Equal(t, 1.0, f.counter(t, "gift_unclaims_total", map[string]string{"kind": "unlimited"}))
}

func TestUnclaimUnknownGift(t *testing.T) {
	f := newFixture(t, []string{"g1", "Toaster"})
	err := f.svc.Unclaim(context.Background(), "missing")
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound), "got %v", err)
}

func TestClaimThenUnclaimRoundTrip(t *testing.T) {
	f := newFixture(t, []string{"g1", "Toaster", "", "", "available"})
	ctx := context.Background()

	require.NoError(t, f.svc.Claim(ctx, "g1", Claimant{Name: "Ana"}))
	require.True(t, pkgerrors.IsCode(f.svc.Claim(ctx, "g1", Claimant{Name: "Luis"}), pkgerrors.CodeAlreadyClaimed))
	require.NoError(t, f.svc.Unclaim(ctx, "g1"))
	require.NoError(t, f.svc.Claim(ctx, "g1", Claimant{Name: "Luis"}))

	list, err := f.svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Luis", list[0].ClaimedBy)
	assert.Len(t, f.claims(), 2)
}
