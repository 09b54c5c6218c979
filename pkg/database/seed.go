package database

import (
	"fmt"
	"log"
	"math"
	"time"
	"training_portal_backend/internal/model"
	"training_portal_backend/internal/progression"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type seedCourse struct {
	title    string
	desc     string
	hours    float64
	modules  int
	status   model.CourseStatus
	rate     int
	audience string
	theme    model.Theme
}

var seedCourses = []seedCourse{
	{"Workplace Hazard Recognition", "Identify and mitigate workplace hazards.", 2, 4, model.CourseActive, 85, "All employees", model.ThemeSafety},
	{"Emergency Response Procedures", "Procedures for emergency situations.", 1.5, 3, model.CourseActive, 92, "All employees", model.ThemeSafety},
	{"Safety Equipment Training", "Proper use of safety gear.", 3, 5, model.CourseActive, 78, "Production staff", model.ThemeSafety},
	{"Fire Safety and Prevention", "Fire prevention and response.", 2.5, 4, model.CourseUpcoming, 0, "All employees", model.ThemeSafety},
	{"Ergonomics in the Workplace", "Prevent injuries with proper ergonomics.", 1, 2, model.CourseActive, 60, "Office employees", model.ThemeSafety},
	{"Effective Communication Skills", "Improve team communication.", 4, 6, model.CourseActive, 71, "Managers and supervisors", model.ThemeLeadership},
	{"Conflict Resolution", "Strategies for resolving workplace conflicts.", 3, 4, model.CourseActive, 88, "Managers and supervisors", model.ThemeLeadership},
	{"Team Building and Motivation", "Build and motivate high-performing teams.", 5, 7, model.CourseUpcoming, 0, "Leaders and team leads", model.ThemeLeadership},
	{"Change Management", "Lead through organizational change.", 4.5, 6, model.CourseActive, 55, "Senior leaders", model.ThemeLeadership},
	{"Decision Making Processes", "Enhance decision-making skills.", 3.5, 5, model.CourseActive, 67, "Managers", model.ThemeLeadership},
	{"Anti-Harassment Training", "Understand and prevent harassment.", 2, 3, model.CourseActive, 94, "All employees", model.ThemeCompliance},
	{"Data Privacy and Protection", "GDPR and data protection rules.", 3.5, 5, model.CourseActive, 79, "All employees", model.ThemeCompliance},
	{"Ethical Business Practices", "Maintain ethical standards.", 4, 6, model.CourseUpcoming, 0, "Managers and executives", model.ThemeCompliance},
	{"Intellectual Property Rights", "Protect company IP.", 2.5, 4, model.CourseActive, 63, "Research and development", model.ThemeCompliance},
	{"Regulatory Compliance Update", "Latest industry regulations.", 3, 4, model.CourseActive, 41, "Compliance officers", model.ThemeCompliance},
	{"Time Management", "Effectively manage time and tasks.", 1.5, 3, model.CourseActive, 89, "All employees", model.ThemeSoftSkills},
	{"Emotional Intelligence", "Develop emotional awareness.", 4, 5, model.CourseActive, 76, "All employees", model.ThemeSoftSkills},
	{"Stress Management", "Handle workplace stress.", 2, 3, model.CourseUpcoming, 0, "All employees", model.ThemeSoftSkills},
	{"Creativity and Innovation", "Foster creative thinking.", 3, 4, model.CourseActive, 52, "All employees", model.ThemeSoftSkills},
	{"Networking Skills", "Build professional networks.", 2.5, 4, model.CourseActive, 58, "Mid-level and above", model.ThemeSoftSkills},
	{"Cybersecurity Basics", "Protect against cyber threats.", 3, 5, model.CourseActive, 81, "All employees", model.ThemeTechnical},
	{"Advanced Excel for Analysts", "Master advanced Excel features.", 5, 8, model.CourseActive, 49, "Analysts and data roles", model.ThemeTechnical},
	{"Project Management Tools", "Using PM software effectively.", 4, 6, model.CourseUpcoming, 0, "Project managers", model.ThemeTechnical},
	{"Cloud Computing Fundamentals", "Introduction to cloud technologies.", 6, 9, model.CourseActive, 35, "IT and technical staff", model.ThemeTechnical},
	{"Automation and Robotics", "How AI and robotics impact work.", 4.5, 7, model.CourseActive, 23, "Manufacturing and operations", model.ThemeTechnical},
}

var seedPaths = []struct {
	title   string
	desc    string
	hours   string
	courses []string
}{
	{"Onboarding Path", "Introduction for new employees.", "3.5h", []string{"Workplace Hazard Recognition", "Anti-Harassment Training", "Time Management"}},
	{"Sales Training", "Master the art of sales.", "4.0h", []string{"Effective Communication Skills", "Emotional Intelligence", "Networking Skills"}},
	{"Leadership Development", "Become a better leader.", "6.0h", []string{"Conflict Resolution", "Change Management", "Decision Making Processes"}},
	{"Technical Skills", "Learn essential technical skills.", "5.5h", []string{"Cybersecurity Basics", "Advanced Excel for Analysts", "Cloud Computing Fundamentals"}},
	{"Compliance and Ethics", "Understand company policies.", "2.0h", []string{"Anti-Harassment Training", "Data Privacy and Protection", "Intellectual Property Rights"}},
	{"Project Management", "Manage projects effectively.", "5.0h", []string{"Project Management Tools", "Time Management"}},
	{"Customer Service Excellence", "Provide outstanding customer service.", "3.0h", []string{"Effective Communication Skills", "Stress Management", "Conflict Resolution"}},
}

var seedModuleTypes = []model.ModuleType{
	model.ModuleVideo, model.ModuleReading, model.ModuleQuiz, model.ModulePresentation, model.ModuleAssignment,
}

// seedModules 按课程完成度生成模块，已完成的模块总是前缀，保证解锁顺序成立
func seedModules(sc seedCourse) []model.CourseModule {
	perModule := int(math.Round(sc.hours * 60 / float64(sc.modules)))
	completed := int(math.Round(float64(sc.rate) * float64(sc.modules) / 100))
	mods := make([]model.CourseModule, 0, sc.modules)
	for i := 0; i < sc.modules; i++ {
		mods = append(mods, model.CourseModule{
			Title:       fmt.Sprintf("%s - Part %d", sc.title, i+1),
			Type:        seedModuleTypes[i%len(seedModuleTypes)],
			Duration:    perModule,
			Order:       i + 1,
			IsCompleted: i < completed,
		})
	}
	return mods
}

// Seed 写入演示数据；已有数据的表会被跳过
func Seed(db *gorm.DB, demoPassword string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := seedUsers(tx, demoPassword); err != nil {
			return err
		}
		if err := seedCatalog(tx); err != nil {
			return err
		}
		return seedTrainings(tx)
	})
}

func seedUsers(tx *gorm.DB, demoPassword string) error {
	var count int64
	if err := tx.Model(&model.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	users := []model.User{
		{Username: "admin", Name: "Administrator", Email: "admin@sistema.com", Password: string(hash), Role: model.Admin},
		{Username: "usuario", Name: "Usuario", Email: "usuario@sistema.com", Password: string(hash), Role: model.StandardUser},
	}
	if err := tx.Create(&users).Error; err != nil {
		return err
	}
	log.Println("Seeded demo users")
	return nil
}

func seedCatalog(tx *gorm.DB) error {
	var count int64
	if err := tx.Model(&model.Course{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	byTitle := make(map[string]model.Course, len(seedCourses))
	now := time.Now()
	for _, sc := range seedCourses {
		c := model.Course{
			Title:          sc.title,
			Description:    sc.desc,
			Theme:          sc.theme,
			TargetAudience: sc.audience,
			Status:         sc.status,
			Modules:        seedModules(sc),
		}
		c.CompletionRate = progression.CompletionRate(c.Modules)
		if c.CompletionRate > 0 {
			started := now
			c.StartedAt = &started
		}
		if sc.status == model.CourseUpcoming {
			start := now.AddDate(0, 0, 14)
			c.StartDate = &start
		}
		if err := tx.Create(&c).Error; err != nil {
			return err
		}
		byTitle[c.Title] = c
	}

	for _, sp := range seedPaths {
		p := model.LearningPath{Title: sp.title, Description: sp.desc, EstimatedHours: sp.hours}
		for _, title := range sp.courses {
			if c, ok := byTitle[title]; ok {
				p.Courses = append(p.Courses, c)
			}
		}
		if err := tx.Omit("Courses.*").Create(&p).Error; err != nil {
			return err
		}
	}
	log.Printf("Seeded %d courses and %d learning paths", len(seedCourses), len(seedPaths))
	return nil
}

func seedTrainings(tx *gorm.DB) error {
	var count int64
	if err := tx.Model(&model.Training{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	trainings := []model.Training{
		{Title: "Workplace Safety", Description: "Basic safety procedures.", Duration: "2h", Status: model.TrainingCompleted},
		{Title: "Corporate Compliance", Description: "Company rules.", Duration: "1.5h", Status: model.TrainingInProgress},
		{Title: "Leadership Essentials", Description: "Team motivation.", Duration: "3h", Status: model.TrainingNotStarted},
	}
	return tx.Create(&trainings).Error
}
