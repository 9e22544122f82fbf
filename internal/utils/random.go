package utils

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/crewdesk-dev/back-office/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

var firstNames = []string{
	"James", "Mary", "Robert", "Patricia", "John", "Jennifer", "Michael",
	"Linda", "David", "Elizabeth", "William", "Barbara", "Richard", "Susan",
	"Joseph", "Jessica", "Thomas", "Sarah", "Carlos", "Maria", "Daniel",
	"Karen", "Kevin", "Nancy", "Brian", "Lisa", "Angela", "Marcus", "Rosa",
	"Derek",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller",
	"Davis", "Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez",
	"Wilson", "Anderson", "Thomas", "Taylor", "Moore", "Jackson", "Martin",
	"Nguyen", "Kim", "Patel", "Rivera", "Cooper",
}

var companyNouns = []string{
	"Logistics", "Manufacturing", "Distribution", "Foods", "Packaging",
	"Fulfillment", "Industries", "Warehousing", "Assembly", "Freight",
}

var companyAdjectives = []string{
	"Summit", "Pioneer", "Cascade", "Lakeside", "Redwood", "Atlas",
	"Northgate", "Harbor", "Prairie", "Granite",
}

var positionTitles = []string{
	"Warehouse Associate", "Forklift Operator", "Assembly Line Worker",
	"Picker Packer", "Machine Operator", "Shipping Clerk",
	"Inventory Specialist", "General Laborer", "Quality Inspector",
	"Material Handler",
}

var skillPool = []string{
	"forklift", "inventory", "picking", "packing", "shipping", "receiving",
	"assembly", "machine operation", "quality control", "pallet jack",
	"rf scanner", "loading",
}

func GenerateRandomFullName() string {
	return firstNames[rand.Intn(len(firstNames))] + " " + lastNames[rand.Intn(len(lastNames))]
}

func GenerateRandomCompanyName() string {
	return companyAdjectives[rand.Intn(len(companyAdjectives))] + " " + companyNouns[rand.Intn(len(companyNouns))]
}

var digits = "0123456789"

// UsernameFromFullName derives a lowercase username with a random digit
// suffix, e.g. "Maria Lopez" -> "mlopez73".
func UsernameFromFullName(fullName string) string {
	parts := strings.Fields(strings.ToLower(fullName))
	username := ""
	if len(parts) > 1 {
		username = parts[0][:1] + parts[len(parts)-1]
	} else if len(parts) == 1 {
		username = parts[0]
	}

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

var roles = []domain.Role{
	domain.RoleAdmin,
	domain.RoleRecruiter,
}

func GenerateRandomRole() domain.Role {
	return roles[rand.Intn(len(roles))]
}

func GenerateRandomUser(password string) (*domain.User, error) {
	fullName := GenerateRandomFullName()
	username := UsernameFromFullName(fullName)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &domain.User{
		Username:     username,
		PasswordHash: string(passwordHash),
		FullName:     fullName,
		Email:        username + "@crewdesk.dev",
		Role:         GenerateRandomRole(),
	}, nil
}

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	randomPassword := make([]rune, length)
	for i := range randomPassword {
		randomPassword[i] = letters[rand.Intn(len(letters))]
	}
	return string(randomPassword)
}

func GenerateRandomPhone() string {
	return fmt.Sprintf("(%03d) %03d-%04d", rand.Intn(800)+200, rand.Intn(800)+200, rand.Intn(10000))
}

// GenerateRandomSkills picks a random non-empty subset of the skill pool
// using a Fisher-Yates shuffle.
func GenerateRandomSkills(max int) []string {
	pool := append([]string{}, skillPool...)

	for i := len(pool) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		pool[i], pool[j] = pool[j], pool[i]
	}

	n := rand.Intn(max) + 1
	if n > len(pool) {
		n = len(pool)
	}
	return pool[:n]
}

func GenerateRandomClient() *domain.Client {
	name := GenerateRandomCompanyName()
	contact := GenerateRandomFullName()
	contactSlug := strings.ReplaceAll(strings.ToLower(contact), " ", ".")
	domainSlug := strings.ReplaceAll(strings.ToLower(name), " ", "")

	return &domain.Client{
		Name:         name,
		ContactName:  contact,
		ContactEmail: contactSlug + "@" + domainSlug + ".com",
		ContactPhone: GenerateRandomPhone(),
		Address:      fmt.Sprintf("%d Industrial Pkwy", rand.Intn(9000)+100),
	}
}

func GenerateRandomJobseeker() *domain.Jobseeker {
	fullName := GenerateRandomFullName()
	slug := strings.ReplaceAll(strings.ToLower(fullName), " ", ".")

	return &domain.Jobseeker{
		FullName:       fullName,
		Email:          fmt.Sprintf("%s%d@example.com", slug, rand.Intn(1000)),
		Phone:          GenerateRandomPhone(),
		Skills:         GenerateRandomSkills(4),
		DesiredPayRate: float64(rand.Intn(15)+15) + 0.5*float64(rand.Intn(2)),
	}
}

func GenerateRandomPosition(clientID int64) *domain.Position {
	payRate := float64(rand.Intn(15) + 16)
	billRate := payRate * 1.6

	start := time.Now().AddDate(0, 0, -rand.Intn(30))
	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)

	return &domain.Position{
		ClientID:          clientID,
		Title:             positionTitles[rand.Intn(len(positionTitles))],
		Description:       "Temporary staffing engagement",
		Skills:            GenerateRandomSkills(3),
		PayRate:           payRate,
		OvertimePayRate:   payRate * 1.5,
		BillRate:          billRate,
		OvertimeBillRate:  billRate * 1.5,
		OvertimeThreshold: domain.DefaultOvertimeThreshold,
		NumberOfPositions: int32(rand.Intn(5) + 1),
		StartDate:         start,
		EndDate:           start.AddDate(0, rand.Intn(6)+1, 0),
	}
}

// GenerateRandomWeekHours fills a plausible work week: five weekdays of 6-10
// hours, weekends usually empty.
func GenerateRandomWeekHours() [7]float64 {
	var hours [7]float64
	for i := 0; i < 5; i++ {
		hours[i] = float64(rand.Intn(5) + 6)
	}
	if rand.Intn(4) == 0 {
		hours[5] = float64(rand.Intn(5) + 4)
	}
	return hours
}
