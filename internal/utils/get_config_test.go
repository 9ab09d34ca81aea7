package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetConfigDefaults(t *testing.T) {
	SetConfig(Config{})
	t.Cleanup(func() { SetConfig(Config{}) })

	assert.Equal(t, "8080", GetConfig("PORT"))
	assert.Equal(t, "https://oauth2.googleapis.com/tokeninfo", GetConfig("GOOGLE_TOKENINFO_URL"))
	assert.Equal(t, "foodsaver", GetConfig("MONGO_DATABASE"))
	assert.Equal(t, "0", GetConfig("REDIS_DB"))
	assert.Equal(t, "", GetConfig("UNKNOWN_KEY"))
	assert.Equal(t, 120*time.Minute, GetJWTTTL())
	assert.Equal(t, 48*time.Hour, GetReservationTTL())
}

func TestGetConfigOverrides(t *testing.T) {
	SetConfig(Config{
		Port:                "3000",
		DBHost:              "db",
		JWTTTLMinutes:       15,
		ReservationTTLHours: 6,
		RedisDB:             2,
	})
	t.Cleanup(func() { SetConfig(Config{}) })

	assert.Equal(t, "3000", GetConfig("PORT"))
	assert.Equal(t, "db", GetConfig("DB_HOST"))
	assert.Equal(t, "2", GetConfig("REDIS_DB"))
	assert.Equal(t, 15*time.Minute, GetJWTTTL())
	assert.Equal(t, 6*time.Hour, GetReservationTTL())
}

func TestGetGoogleAudiencesSkipsEmpty(t *testing.T) {
	SetConfig(Config{
		GoogleClientID:        "web.apps.googleusercontent.com",
		GoogleAndroidClientID: " android.apps.googleusercontent.com ",
	})
	t.Cleanup(func() { SetConfig(Config{}) })

	assert.Equal(t, []string{"web.apps.googleusercontent.com", "android.apps.googleusercontent.com"}, GetGoogleAudiences())
}
