package reaper

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/bankfeed-dev/bankfeed/internal/model"
	"github.com/bankfeed-dev/bankfeed/internal/store"
)

func newTestStore(t *testing.T) (*store.Store, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "bankfeed.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	st, err := store.New(db)
	require.NoError(t, err)
	return st, db
}

func ageSession(t *testing.T, db *gorm.DB, id string, age time.Duration) {
	t.Helper()
	past := time.Now().UTC().Add(-age)
	require.NoError(t, db.Model(&model.ImportSession{}).
		Where("id = ?", id).Update("created_at", past).Error)
}

func TestSweep_RemovesOnlyStaleDrafts(t *testing.T) {
	st, db := newTestStore(t)

	stale, _ := st.CreateSession()
	fresh, _ := st.CreateSession()
	ageSession(t, db, stale.ID, 10*24*time.Hour)
	ageSession(t, db, fresh.ID, 2*24*time.Hour)

	_, err := st.AddEmptyStagingRow(stale.ID)
	require.NoError(t, err)
	_, err = st.AddEmptyStagingRow(fresh.ID)
	require.NoError(t, err)

	r := New(st, zerolog.Nop())
	n, err := r.Sweep(7 * 24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = st.GetSession(stale.ID)
	assert.ErrorIs(t, err, store.ErrSessionNotEligible)

	// Staging rows of the removed session are gone too.
	count, err := st.CountStagingRows(stale.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	// The fresh draft and its row survive.
	_, err = st.GetSession(fresh.ID)
	require.NoError(t, err)
	count, err = st.CountStagingRows(fresh.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestSweep_IgnoresCommittedSessions(t *testing.T) {
	st, db := newTestStore(t)

	sess, _ := st.CreateSession()
	require.NoError(t, st.MarkCommitted(sess.ID))
	ageSession(t, db, sess.ID, 30*24*time.Hour)

	r := New(st, zerolog.Nop())
	n, err := r.Sweep(7 * 24 * time.Hour)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = st.GetSession(sess.ID)
	require.NoError(t, err)
}

func TestSweep_EmptyStore(t *testing.T) {
	st, _ := newTestStore(t)

	r := New(st, zerolog.Nop())
	n, err := r.Sweep(7 * 24 * time.Hour)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSweep_Idempotent(t *testing.T) {
	st, db := newTestStore(t)

	sess, _ := st.CreateSession()
	ageSession(t, db, sess.ID, 10*24*time.Hour)

	r := New(st, zerolog.Nop())
	n, err := r.Sweep(7 * 24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = r.Sweep(7 * 24 * time.Hour)
	require.NoError(t, err)
	assert.Zero(t, n)
}
