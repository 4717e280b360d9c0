package seed

import (
	"log/slog"
	"time"

	"github.com/shiftwise-dev/shiftwise/backend/internal/domain"
	"github.com/shiftwise-dev/shiftwise/backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

type demoEmployee struct {
	Username         string
	FullName         string
	MaxShiftsPerWeek int32
}

var demoEmployees = []demoEmployee{
	{Username: "amy.brooks", FullName: "Amy Brooks", MaxShiftsPerWeek: 5},
	{Username: "carl.jensen", FullName: "Carl Jensen", MaxShiftsPerWeek: 4},
	{Username: "dana.ortiz", FullName: "Dana Ortiz", MaxShiftsPerWeek: 5},
	{Username: "eric.walsh", FullName: "Eric Walsh", MaxShiftsPerWeek: 3},
	{Username: "fiona.patel", FullName: "Fiona Patel", MaxShiftsPerWeek: 6},
}

type demoLabel struct {
	Name            string
	DurationMinutes int32
	ApplicableDays  []domain.Weekday
}

var demoLabels = []demoLabel{
	{
		Name:            "Opening",
		DurationMinutes: 240,
		ApplicableDays: []domain.Weekday{
			domain.Monday, domain.Tuesday, domain.Wednesday,
			domain.Thursday, domain.Friday, domain.Saturday,
		},
	},
	{
		Name:            "Afternoon",
		DurationMinutes: 300,
		ApplicableDays: []domain.Weekday{
			domain.Monday, domain.Tuesday, domain.Wednesday,
			domain.Thursday, domain.Friday,
		},
	},
	{
		Name:            "Closing",
		DurationMinutes: 240,
		ApplicableDays: []domain.Weekday{
			domain.Monday, domain.Tuesday, domain.Wednesday, domain.Thursday,
			domain.Friday, domain.Saturday, domain.Sunday,
		},
	},
}

// SeedDemoData creates one demo shop with an owner, a small roster, a set of
// shift labels, a couple of rules and an approved off day. It is meant for a
// fresh database; reruns fail on the unique username constraint.
func SeedDemoData(r *repository.Repository, password string) {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("failed to hash the demo password", "error", err)
		return
	}

	owner := &domain.User{
		Username:         "demo.owner",
		PasswordHash:     string(passwordHash),
		FullName:         "Demo Owner",
		Email:            "demo.owner@shiftwise.test",
		MaxShiftsPerWeek: 7,
		IsActive:         true,
	}
	if err := r.CreateUser(owner); err != nil {
		slog.Error("failed to create the demo owner", "error", err)
		return
	}

	shop := &domain.Shop{
		Name:     "Demo Coffee Bar",
		Location: "12 Harbor Street",
		OwnerID:  owner.ID,
		IsActive: true,
	}
	if err := r.CreateShop(shop); err != nil {
		slog.Error("failed to create the demo shop", "error", err)
		return
	}

	employees := make([]*domain.User, 0, len(demoEmployees))
	for _, de := range demoEmployees {
		user := &domain.User{
			Username:         de.Username,
			PasswordHash:     string(passwordHash),
			FullName:         de.FullName,
			Email:            de.Username + "@shiftwise.test",
			MaxShiftsPerWeek: de.MaxShiftsPerWeek,
			IsActive:         true,
		}
		if err := r.CreateUser(user); err != nil {
			slog.Error("failed to create a demo employee", "username", de.Username, "error", err)
			return
		}
		if err := r.AddShopMember(shop.ID, user.ID, domain.ShopRoleMember); err != nil {
			slog.Error("failed to add a demo employee to the shop", "username", de.Username, "error", err)
			return
		}
		employees = append(employees, user)
	}

	labels := make([]*domain.ShiftLabel, 0, len(demoLabels))
	for _, dl := range demoLabels {
		label := &domain.ShiftLabel{
			ShopID:                 shop.ID,
			Name:                   dl.Name,
			DefaultDurationMinutes: dl.DurationMinutes,
			ApplicableDays:         dl.ApplicableDays,
			IsActive:               true,
		}
		if err := r.CreateShiftLabel(label); err != nil {
			slog.Error("failed to create a demo shift label", "name", dl.Name, "error", err)
			return
		}
		labels = append(labels, label)
	}

	// Carl never closes, Eric is off the whole weekend
	rules := []*domain.Rule{
		{
			ShopID:     shop.ID,
			EmployeeID: employees[1].ID,
			Kind:       domain.RuleExcludeLabel,
			Payload:    domain.RulePayload{LabelID: labels[2].ID, Day: domain.Friday},
		},
		{
			ShopID:     shop.ID,
			EmployeeID: employees[3].ID,
			Kind:       domain.RuleExcludeDays,
			Payload:    domain.RulePayload{Day: domain.Saturday},
		},
		{
			ShopID:     shop.ID,
			EmployeeID: employees[3].ID,
			Kind:       domain.RuleExcludeDays,
			Payload:    domain.RulePayload{Day: domain.Sunday},
		},
	}
	for _, rule := range rules {
		if err := r.CreateRule(rule); err != nil {
			slog.Error("failed to create a demo rule", "error", err)
			return
		}
	}

	offDay := &domain.OffDay{
		EmployeeID: employees[0].ID,
		Date:       time.Now().UTC().AddDate(0, 0, 7).Format(domain.DateLayout),
		Reason:     "dentist appointment",
	}
	if err := r.CreateOffDay(offDay); err != nil {
		slog.Error("failed to create a demo off day", "error", err)
		return
	}
	if err := r.UpdateOffDayStatus(offDay, domain.OffDayApproved); err != nil {
		slog.Error("failed to approve the demo off day", "error", err)
		return
	}

	slog.Info("demo data created", "shop_id", shop.ID, "employees", len(employees), "labels", len(labels))
}
