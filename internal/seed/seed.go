package seed

import (
	"encoding/json"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/pr-poehali-dev/wedding-invitation-site-58/internal/rsvp"
)

type SeedData struct {
	Responses []rsvp.Response `json:"responses"`
}

// Seeder accepts responses with fixed ids.
type Seeder interface {
	Seed(responses []rsvp.Response) error
}

// LoadFromFile reads seed data from a JSON file and populates the store.
// Returns nil if path is empty (seeding disabled).
func LoadFromFile(path string, s Seeder) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading seed file %s: %w", path, err)
	}

	var sd SeedData
	if err := json.Unmarshal(data, &sd); err != nil {
		return fmt.Errorf("parsing seed file %s: %w", path, err)
	}

	log.WithField("count", len(sd.Responses)).Info("seeding responses from file")

	return s.Seed(sd.Responses)
}
