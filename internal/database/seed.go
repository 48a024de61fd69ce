package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Default development credentials created by Seed.
const (
	SeedAdminEmail    = "admin@kulipoly.local"
	SeedAdminPassword = "admin12345"
)

// Seed populates the database with initial development data: a default
// admin user (2FA not yet enrolled), one published blog post and one
// published portfolio case. Each part is skipped when its table already
// has rows.
func Seed(db *sql.DB) error {
	if err := seedAdmin(db); err != nil {
		return err
	}
	if err := seedBlog(db); err != nil {
		return err
	}
	return seedPortfolio(db)
}

func seedAdmin(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}
	if count > 0 {
		slog.Info("users already seeded, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(SeedAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO users (email, password_hash, display_name, role, totp_enabled)
		VALUES ($1, $2, $3, $4, $5)
	`, SeedAdminEmail, string(hash), "Admin", "admin", false)
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	slog.Info("database seeded with default admin user",
		"email", SeedAdminEmail,
		"password", SeedAdminPassword,
	)
	return nil
}

func seedBlog(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM blog_posts").Scan(&count); err != nil {
		return fmt.Errorf("seed check blog posts: %w", err)
	}
	if count > 0 {
		return nil
	}

	// The second post stores its body the way the very first version of the
	// editor did: a bare JSON string instead of a block array.
	_, err := db.Exec(`
		INSERT INTO blog_posts (slug, title, subtitle, date, category, thumbnail, reading_time, content, is_published)
		VALUES
		($1, $2, $3, $4, 'Insight', '/images/blog/optimasi.png', '5 menit baca', $5::jsonb, TRUE),
		($6, $7, $8, $9, 'Update', '/images/blog/studio.png', '2 menit baca', $10::jsonb, TRUE)
	`,
		"optimasi-aset-3d-untuk-web",
		"Optimasi Aset 3D untuk Web",
		"Cara kami memangkas ukuran model tanpa mengorbankan kualitas",
		"12 Januari 2026",
		`[{"id":"b1","kind":"text","text":"Aset 3D yang besar membuat aplikasi berjalan lambat."},{"id":"b2","kind":"image","url":"/images/blog/wireframe.png","caption":"Model sebelum optimasi","alt":"Model wireframe"}]`,
		"studio-baru",
		"Studio Baru Kami",
		"Kabar terbaru dari tim",
		"3 Februari 2026",
		`"Kami pindah ke studio baru di Bandung."`,
	)
	if err != nil {
		return fmt.Errorf("seed insert blog posts: %w", err)
	}
	slog.Info("database seeded with sample blog posts")
	return nil
}

func seedPortfolio(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM portfolios").Scan(&count); err != nil {
		return fmt.Errorf("seed check portfolios: %w", err)
	}
	if count > 0 {
		return nil
	}

	_, err := db.Exec(`
		INSERT INTO portfolios (slug, title, description, thumbnail, company_name, tags, year, duration,
		                        role, challenge, solution, results, technologies, gallery, testimonial,
		                        metrics, is_published, is_premier)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12::jsonb, $13::jsonb, $14::jsonb,
		        $15::jsonb, $16::jsonb, TRUE, TRUE)
	`,
		"simulasi-pabrik-vr",
		"Simulasi Pabrik VR",
		"Replikasi lini produksi dalam VR untuk pelatihan operator.",
		"/images/portfolio/pabrik.png",
		"PT Contoh Industri",
		"{VR,3D}",
		"2025",
		"4 bulan",
		"Pemodelan 3D dan optimasi",
		"Model mesin asli terlalu berat untuk headset mandiri.",
		"Kami membangun ulang setiap mesin dengan topologi ringan.",
		`["Waktu muat turun 70%","Pelatihan lebih cepat"]`,
		`["Blender","Unity"]`,
		`["/images/portfolio/pabrik-1.png"]`,
		`{"quote":"Hasilnya luar biasa.","author":"Budi Santoso","position":"Manajer Pelatihan"}`,
		`[{"label":"Ukuran aset","value":"-65%","description":"Dibanding model CAD asli"}]`,
	)
	if err != nil {
		return fmt.Errorf("seed insert portfolio: %w", err)
	}
	slog.Info("database seeded with sample portfolio case")
	return nil
}
