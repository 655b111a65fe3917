package service

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	slotModel "sportku_backend/internals/features/sports/slot/model"
	sportModel "sportku_backend/internals/features/sports/sport/model"
)

// BuildSystemPrompt snapshots the currently bookable sports and slots so
// the assistant answers from live data and can hand out working deep
// links (/book/<sport_id>?slot=<slot_id>).
func BuildSystemPrompt(db *gorm.DB) (string, error) {
	var sports []sportModel.SportModel
	if err := db.Where("is_active = ?", true).Order("name ASC").Find(&sports).Error; err != nil {
		return "", err
	}

	var slots []slotModel.SlotModel
	if err := db.Where("is_active = ?", true).Order("start_time ASC").Find(&slots).Error; err != nil {
		return "", err
	}

	slotsBySport := make(map[string][]slotModel.SlotModel, len(sports))
	for _, s := range slots {
		key := s.SportID.String()
		slotsBySport[key] = append(slotsBySport[key], s)
	}

	var b strings.Builder
	b.WriteString("You are the booking assistant for the university sports facility. ")
	b.WriteString("Answer only from the facility data below. ")
	b.WriteString("When recommending a slot, always include its deep link. ")
	b.WriteString("If a sport or slot is not listed, say it is currently unavailable.\n\n")
	b.WriteString("Available sports and slots today:\n")

	if len(sports) == 0 {
		b.WriteString("(none — the facility is closed right now)\n")
	}
	for _, sp := range sports {
		fmt.Fprintf(&b, "- %s (capacity %d seats)\n", sp.Name, sp.Capacity)
		for _, sl := range slotsBySport[sp.ID.String()] {
			fmt.Fprintf(&b, "  * %s-%s", sl.StartTime, sl.EndTime)
			if sl.GenderRestriction != "any" {
				fmt.Fprintf(&b, ", %s only", sl.GenderRestriction)
			}
			if sl.AllowedUserType != "any" {
				fmt.Fprintf(&b, ", %s only", sl.AllowedUserType)
			}
			fmt.Fprintf(&b, " — link: /book/%s?slot=%s\n", sp.ID, sl.ID)
		}
	}

	return b.String(), nil
}
