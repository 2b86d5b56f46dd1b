package sampledata

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"
)

const secondsPerDay = 86400

// Habit archetypes: typical activity centers in seconds since midnight.
// Users cluster around these so the generated tables contain genuinely
// close pairs instead of uniform noise.
const (
	habitNightOwl   = 0
	habitEarlyBird  = 1
	habitOfficeHour = 2
	habitEvening    = 3
	habitErratic    = 4
	habitCount      = 5
)

var habitCenters = map[int]int64{
	habitNightOwl:   1*3600 + 30*60,  // 01:30
	habitEarlyBird:  6 * 3600,        // 06:00
	habitOfficeHour: 13 * 3600,       // 13:00
	habitEvening:    20*3600 + 30*60, // 20:30
}

// habitJitter is the half-width of the window a habitual user's activity
// falls in.
const habitJitter = 90 * 60 // ±90 minutes

// randomInt64 returns a uniform value in [0, n) using crypto/rand.
func randomInt64(n int64) int64 {
	v, _ := rand.Int(rand.Reader, big.NewInt(n))
	return v.Int64()
}

// user pairs an id with a sampling habit.
type user struct {
	id    string
	habit int
}

// generateUsers creates n users with short unique ids and random habits.
func generateUsers(n int) []user {
	users := make([]user, n)
	for i := range users {
		users[i] = user{
			id:    "user-" + uuid.NewString()[:8],
			habit: int(randomInt64(habitCount)),
		}
	}
	return users
}

// sampleClock draws one HH:MM:SS time for a user according to their habit.
// Windows wrap across midnight, so a night owl sampled early lands late in
// the previous day.
func sampleClock(u user) string {
	var seconds int64
	if u.habit == habitErratic {
		seconds = randomInt64(secondsPerDay)
	} else {
		center := habitCenters[u.habit]
		offset := randomInt64(2*habitJitter+1) - habitJitter
		seconds = ((center+offset)%secondsPerDay + secondsPerDay) % secondsPerDay
	}
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}

// generateRows spreads rows over the users round-robin so every user gets at
// least one observation when rows >= users.
func generateRows(users []user, rows int) [][2]string {
	out := make([][2]string, rows)
	for i := 0; i < rows; i++ {
		u := users[i%len(users)]
		out[i] = [2]string{u.id, sampleClock(u)}
	}
	return out
}
