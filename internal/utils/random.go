package utils

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/shiftwise-dev/shiftwise/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

var firstNames = []string{
	"Alice", "Ben", "Carla", "Daniel", "Elena", "Frank", "Grace", "Henry",
	"Iris", "Jack", "Kira", "Liam", "Mona", "Noah", "Olivia", "Pete",
	"Quinn", "Rosa", "Sam", "Tara",
}
var lastNames = []string{
	"Adams", "Baker", "Clark", "Davis", "Evans", "Foster", "Green", "Hayes",
	"Irwin", "Jones", "Keller", "Lewis", "Miller", "Nolan", "Owens", "Parker",
	"Quigley", "Reyes", "Smith", "Turner",
}

func GenerateRandomFullName() string {
	return firstNames[rand.Intn(len(firstNames))] + " " + lastNames[rand.Intn(len(lastNames))]
}

var digits = "0123456789"

func GenerateUsernameFromFullName(fullName string) string {
	parts := strings.Split(strings.ToLower(fullName), " ")
	username := strings.Join(parts, ".")

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	password := make([]rune, length)
	for i := range password {
		password[i] = letters[rand.Intn(len(letters))]
	}
	return string(password)
}

func GenerateRandomEmployee(password string, emailDomainName string) (*domain.User, error) {
	fullName := GenerateRandomFullName()
	username := GenerateUsernameFromFullName(fullName)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:         username,
		PasswordHash:     string(passwordHash),
		FullName:         fullName,
		Email:            username + "@" + emailDomainName,
		MaxShiftsPerWeek: int32(rand.Intn(5) + 2),
		IsActive:         true,
	}

	return user, nil
}

// Fisher-Yates shuffle over the full week, then a random non-empty prefix.
func GenerateRandomApplicableDays() []domain.Weekday {
	days := []domain.Weekday{
		domain.Monday, domain.Tuesday, domain.Wednesday, domain.Thursday,
		domain.Friday, domain.Saturday, domain.Sunday,
	}

	for i := len(days) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		days[i], days[j] = days[j], days[i]
	}

	n := rand.Intn(len(days)) + 1

	return days[:n]
}

var labelNames = []string{"Opening", "Morning", "Midday", "Afternoon", "Evening", "Closing"}

func GenerateRandomShiftLabel(shopID int64) *domain.ShiftLabel {
	return &domain.ShiftLabel{
		ShopID:                 shopID,
		Name:                   fmt.Sprintf("%s %02d", labelNames[rand.Intn(len(labelNames))], rand.Intn(100)),
		DefaultDurationMinutes: int32((rand.Intn(8) + 1) * 60),
		ApplicableDays:         GenerateRandomApplicableDays(),
		IsActive:               true,
	}
}
