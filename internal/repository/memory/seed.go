package memory

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/gdugdh24/mentorlink-backend/internal/domain"
)

// Seed is the fixture format accepted by LoadSeed.
type Seed struct {
	Founders []struct {
		domain.FounderProfile
		Startup *domain.StartupProfile `json:"startup"`
	} `json:"founders"`
	Mentors []struct {
		domain.MentorProfile
		Onboarded *bool `json:"onboarding_completed"`
	} `json:"mentors"`
}

// LoadSeed reads founders and mentors from JSON into the store.
// Mentors are onboarded unless the fixture says otherwise.
func (s *Store) LoadSeed(r io.Reader) error {
	var seed Seed
	if err := json.NewDecoder(r).Decode(&seed); err != nil {
		return fmt.Errorf("failed to decode seed: %w", err)
	}

	for _, f := range seed.Founders {
		s.PutFounder(f.FounderProfile, f.Startup)
	}
	for _, m := range seed.Mentors {
		onboarded := m.Onboarded == nil || *m.Onboarded
		s.PutMentor(m.MentorProfile, onboarded)
	}
	return nil
}

// LoadSeedFile is LoadSeed for a file on disk.
func (s *Store) LoadSeedFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()

	return s.LoadSeed(f)
}
