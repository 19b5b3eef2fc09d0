package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"time"

	"israa-academy/internal/config"
	"israa-academy/internal/domain"
	"israa-academy/internal/domain/model"
	pg "israa-academy/internal/infra/db/postgres"
	"israa-academy/internal/usecase"

	"github.com/rs/zerolog"
)

const demoCode = "ALN-1A2B-3C4D"

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, false)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 4)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	if err := pg.RunMigrations(cfg.Database.URL); err != nil {
		log.Fatalf("migrations: %v", err)
	}

	logger := zerolog.New(nil)
	userRepo := pg.NewUserRepo(pool)
	courseRepo := pg.NewCourseRepo(pool)
	codeRepo := pg.NewActivationCodeRepo(pool)
	courseUC := usecase.NewCourseUseCase(courseRepo, &logger)

	// ---- Admin account ----
	admin, err := userRepo.FindByEmail(ctx, nil, "admin@israa.com")
	if errors.Is(err, domain.ErrNotFound) {
		admin, err = model.NewUser("", "admin@israa.com", "مدير النظام")
		if err != nil {
			log.Fatalf("new admin: %v", err)
		}
		admin.Role = model.UserRoleAdmin
		if err := userRepo.Save(ctx, nil, admin); err != nil {
			log.Fatalf("save admin: %v", err)
		}
		fmt.Printf("seeded admin: %s\n", admin.Email)
	} else if err != nil {
		log.Fatalf("find admin: %v", err)
	} else {
		fmt.Printf("admin already present: %s\n", admin.Email)
	}

	// ---- Courses ----
	seedCourses := []struct {
		Slug    string
		Title   string
		TitleAR string
		Price   int64
		Level   string
	}{
		{"work-money-foundations", "Work & Money Foundations", "أسس العمل والمال", 50_000, "beginner"},
		{"psychology-male-female", "Psychology of Male & Female", "سيكولوجية الذكر والأنثى", 75_000, "intermediate"},
	}

	for _, sc := range seedCourses {
		existing, err := courseUC.GetBySlug(ctx, sc.Slug)
		if err == nil {
			fmt.Printf("course already present: %s\n", existing.Slug)
			continue
		}
		if !errors.Is(err, domain.ErrNotFound) {
			log.Fatalf("find course %q: %v", sc.Slug, err)
		}

		course, err := courseUC.Create(ctx, sc.Slug, sc.Title, sc.TitleAR, "", "", sc.Price, sc.Level)
		if err != nil {
			log.Fatalf("create course %q: %v", sc.Slug, err)
		}
		if err := courseUC.Publish(ctx, course.ID, true); err != nil {
			log.Fatalf("publish course %q: %v", sc.Slug, err)
		}
		fmt.Printf("seeded course: %s (id=%s, price=%d IQD)\n", course.Slug, course.ID, course.PriceIQD)
	}

	// ---- Demo activation code ----
	if _, err := codeRepo.FindByCode(ctx, nil, demoCode); err == nil {
		fmt.Printf("demo code already present: %s\n", demoCode)
	} else if errors.Is(err, domain.ErrNotFound) {
		course, err := courseUC.GetBySlug(ctx, "work-money-foundations")
		if err != nil {
			log.Fatalf("find demo course: %v", err)
		}
		code := &model.ActivationCode{
			Code:     demoCode,
			CourseID: &course.ID,
			Status:   model.CodeStatusUnused,
			IssuedAt: time.Now().UTC(),
		}
		if err := codeRepo.Save(ctx, nil, code); err != nil {
			log.Fatalf("save demo code: %v", err)
		}
		fmt.Printf("seeded demo code: %s -> %s\n", demoCode, course.Slug)
	} else {
		log.Fatalf("find demo code: %v", err)
	}

	fmt.Println("Seeding complete.")
}
