package mockstore

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/school-portal/internal/models"
)

// Demo passwords are public, so the seed hashes them at the minimum cost.
const seedHashCost = bcrypt.MinCost

func (s *Store) seed() {
	stMarys := models.School{
		ID:      "school1",
		Name:    "St. Mary's High School",
		Domain:  "stmarys",
		Address: "123 Education St, City",
		Phone:   "555-0101",
		Email:   "admin@stmarys.edu",
		Settings: models.SchoolSettings{
			TimeSlots: []models.Slot{models.SlotMorning, models.SlotAfternoon, models.SlotEvening},
			Classes:   []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11", "12"},
			Sections:  []string{"A", "B", "C", "D", "E"},
		},
	}
	brightFuture := models.School{
		ID:      "school2",
		Name:    "Bright Future Academy",
		Domain:  "brightfuture",
		Address: "456 Learning Ave, Town",
		Phone:   "555-0202",
		Email:   "admin@brightfuture.edu",
		Settings: models.SchoolSettings{
			TimeSlots: []models.Slot{models.SlotMorning, models.SlotAfternoon},
			Classes:   []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10"},
			Sections:  []string{"A", "B", "C"},
		},
	}
	s.schools = []models.School{stMarys, brightFuture}

	s.seedAccounts()

	for _, st := range []models.Student{
		{ID: "student1", Name: "Alice Johnson", Class: "10", Section: "A", ParentID: "parent1", SchoolID: "school1"},
		{ID: "student2", Name: "Bob Smith", Class: "10", Section: "A", ParentID: "parent1", SchoolID: "school1"},
		{ID: "student3", Name: "Charlie Brown", Class: "9", Section: "B", ParentID: "parent2", SchoolID: "school1"},
		{ID: "student4", Name: "David Wilson", Class: "8", Section: "A", ParentID: "parent3", SchoolID: "school2"},
		{ID: "student5", Name: "Emma Davis", Class: "9", Section: "B", ParentID: "parent4", SchoolID: "school2"},
	} {
		s.students.insert(st.SchoolID, st)
	}

	for _, t := range []models.Teacher{
		{ID: "teacher1", Name: "John Teacher", Class: "10", Section: "A", Phone: "1234567890", SchoolID: "school1"},
		{ID: "teacher2", Name: "Jane Teacher", Class: "9", Section: "B", Phone: "0987654321", SchoolID: "school1"},
		{ID: "teacher3", Name: "Sarah Teacher", Class: "8", Section: "A", Phone: "1112223333", SchoolID: "school2"},
		{ID: "teacher4", Name: "Mike Teacher", Class: "9", Section: "B", Phone: "4445556666", SchoolID: "school2"},
	} {
		s.teachers.insert(t.SchoolID, t)
	}

	for _, p := range []models.Parent{
		{ID: "parent1", FatherName: "John Parent", MotherName: "Mary Parent", ChildrenIDs: []string{"student1", "student2"}, Phone: "5551234567", SchoolID: "school1"},
		{ID: "parent2", FatherName: "Bob Parent", MotherName: "Alice Parent", ChildrenIDs: []string{"student3"}, Phone: "5559876543", SchoolID: "school1"},
		{ID: "parent3", FatherName: "Tom Wilson", MotherName: "Lisa Wilson", ChildrenIDs: []string{"student4"}, Phone: "7778889999", SchoolID: "school2"},
		{ID: "parent4", FatherName: "James Davis", MotherName: "Anna Davis", ChildrenIDs: []string{"student5"}, Phone: "0001112222", SchoolID: "school2"},
	} {
		s.parents.insert(p.SchoolID, p)
	}

	t, f := models.Bool(true), models.Bool(false)
	for _, a := range []models.AttendanceRecord{
		{ID: "att1", StudentID: "student1", Date: "2024-01-15", Morning: t, Afternoon: t, Evening: f, SchoolID: "school1"},
		{ID: "att2", StudentID: "student2", Date: "2024-01-15", Morning: t, Afternoon: f, Evening: t, SchoolID: "school1"},
		{ID: "att3", StudentID: "student4", Date: "2024-01-15", Morning: t, Afternoon: f, SchoolID: "school2"},
		{ID: "att4", StudentID: "student5", Date: "2024-01-15", Morning: f, Afternoon: t, SchoolID: "school2"},
	} {
		s.attendance.insert(a.SchoolID, a)
	}

	for _, e := range []models.ExamResult{
		{ID: "exam1", StudentID: "student1", ExamType: models.ExamQuarterly, Date: "2024-01-10", Scores: map[string]float64{"math": 90, "english": 85, "science": 88}, SchoolID: "school1"},
		{ID: "exam2", StudentID: "student2", ExamType: models.ExamQuarterly, Date: "2024-01-10", Scores: map[string]float64{"math": 78, "english": 92, "science": 85}, SchoolID: "school1"},
		{ID: "exam3", StudentID: "student4", ExamType: models.ExamQuarterly, Date: "2024-01-10", Scores: map[string]float64{"math": 85, "english": 90, "science": 82}, SchoolID: "school2"},
		{ID: "exam4", StudentID: "student5", ExamType: models.ExamQuarterly, Date: "2024-01-10", Scores: map[string]float64{"math": 92, "english": 88, "science": 95}, SchoolID: "school2"},
	} {
		s.exams.insert(e.SchoolID, e)
	}

	for _, q := range []models.Query{
		{ID: "query1", ParentID: "parent1", StudentID: "student1", RecipientType: models.RecipientTeacher, RecipientID: "teacher1", Subject: "Parent-teacher meeting", Message: "When is the next parent-teacher meeting?", Status: models.QueryPending, Date: "2024-01-14", SchoolID: "school1"},
		{ID: "query2", ParentID: "parent3", StudentID: "student4", RecipientType: models.RecipientTeacher, RecipientID: "teacher3", Subject: "Class performance", Message: "How is my child performing in class?", Status: models.QueryPending, Date: "2024-01-14", SchoolID: "school2"},
	} {
		s.queries.insert(q.SchoolID, q)
	}

	for _, fee := range []models.FeeRecord{
		{ID: "fee1", StudentID: "student1", AcademicYear: "2024-2025", TotalAmount: 50000, DueDate: "2024-12-31", SchoolID: "school1", Installments: []models.Installment{
			paidInstallment("inst1", 15000, "2024-06-30", "2024-06-15"),
			paidInstallment("inst2", 15000, "2024-09-30", "2024-09-20"),
			pendingInstallment("inst3", 10000, "2024-12-31"),
			pendingInstallment("inst4", 10000, "2025-03-31"),
		}},
		{ID: "fee2", StudentID: "student2", AcademicYear: "2024-2025", TotalAmount: 50000, DueDate: "2024-12-31", SchoolID: "school1", Installments: []models.Installment{
			paidInstallment("inst5", 15000, "2024-06-30", "2024-06-10"),
			paidInstallment("inst6", 15000, "2024-09-30", "2024-09-15"),
			paidInstallment("inst7", 10000, "2024-12-31", "2024-12-20"),
			paidInstallment("inst8", 10000, "2025-03-31", "2025-03-15"),
		}},
		{ID: "fee3", StudentID: "student4", AcademicYear: "2024-2025", TotalAmount: 45000, DueDate: "2024-12-31", SchoolID: "school2", Installments: []models.Installment{
			pendingInstallment("inst9", 15000, "2024-06-30"),
			pendingInstallment("inst10", 15000, "2024-09-30"),
			pendingInstallment("inst11", 15000, "2024-12-31"),
		}},
	} {
		fee.Recompute()
		s.fees.insert(fee.SchoolID, fee)
	}
}

func (s *Store) seedAccounts() {
	type seedAccount struct {
		email    string
		password string
		user     models.User
	}
	seeds := []seedAccount{
		{"admin@stmarys.edu", "admin123", models.User{ID: "1", Name: "Admin User", Role: models.RoleAdmin, SchoolID: "school1"}},
		{"teacher@stmarys.edu", "teacher123", models.User{ID: "2", Name: "John Teacher", Role: models.RoleTeacher, Class: "10", Section: "A", SchoolID: "school1"}},
		{"parent@stmarys.edu", "parent123", models.User{ID: "3", Name: "Parent User", Role: models.RoleParent, ParentID: "parent1", Children: []string{"student1", "student2"}, SchoolID: "school1"}},
		{"admin@brightfuture.edu", "admin123", models.User{ID: "4", Name: "Admin User", Role: models.RoleAdmin, SchoolID: "school2"}},
		{"teacher@brightfuture.edu", "teacher123", models.User{ID: "5", Name: "Sarah Teacher", Role: models.RoleTeacher, Class: "8", Section: "A", SchoolID: "school2"}},
		{"parent@brightfuture.edu", "parent123", models.User{ID: "6", Name: "Parent User", Role: models.RoleParent, ParentID: "parent3", Children: []string{"student4"}, SchoolID: "school2"}},
	}

	hashes := make(map[string]string)
	for _, seed := range seeds {
		hash, ok := hashes[seed.password]
		if !ok {
			raw, err := bcrypt.GenerateFromPassword([]byte(seed.password), seedHashCost)
			if err != nil {
				panic(err)
			}
			hash = string(raw)
			hashes[seed.password] = hash
		}
		seed.user.Email = seed.email
		s.accounts = append(s.accounts, account{
			schoolID:     seed.user.SchoolID,
			email:        seed.email,
			passwordHash: hash,
			user:         seed.user,
		})
	}
}

func paidInstallment(id string, amount int64, due, paid string) models.Installment {
	return models.Installment{ID: id, Amount: amount, DueDate: due, PaidDate: &paid, Status: models.InstallmentPaid}
}

func pendingInstallment(id string, amount int64, due string) models.Installment {
	return models.Installment{ID: id, Amount: amount, DueDate: due, Status: models.InstallmentPending}
}
