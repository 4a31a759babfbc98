// Package seed creates the IT company tables and fills them with sample rows.
package seed

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// DefaultFile is the SQLite database file the sample data lives in.
const DefaultFile = "it_company.db"

// Tables in creation order; the workspace shows tabs in this order on SQLite.
var Tables = []string{"Проект", "Разработчик", "Заказчик", "Тестировщик", "База_данных"}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS Проект (
		id INTEGER PRIMARY KEY,
		название TEXT,
		дата_старта TEXT,
		дата_окончания TEXT,
		статус TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS Разработчик (
		id INTEGER PRIMARY KEY,
		имя TEXT,
		специализация TEXT,
		проект_id INTEGER,
		опыт INTEGER,
		FOREIGN KEY (проект_id) REFERENCES Проект(id)
	)`,
	`CREATE TABLE IF NOT EXISTS Заказчик (
		id INTEGER PRIMARY KEY,
		имя TEXT,
		контакт TEXT,
		проект_id INTEGER,
		бюджет REAL,
		FOREIGN KEY (проект_id) REFERENCES Проект(id)
	)`,
	`CREATE TABLE IF NOT EXISTS Тестировщик (
		id INTEGER PRIMARY KEY,
		имя TEXT,
		специализация TEXT,
		проект_id INTEGER,
		опыт INTEGER,
		FOREIGN KEY (проект_id) REFERENCES Проект(id)
	)`,
	`CREATE TABLE IF NOT EXISTS База_данных (
		id INTEGER PRIMARY KEY,
		название TEXT,
		тип TEXT,
		проект_id INTEGER,
		размер REAL,
		FOREIGN KEY (проект_id) REFERENCES Проект(id)
	)`,
}

// Rows holds the sample data per table, values in column order.
var Rows = map[string][][]any{
	"Проект": {
		{1, "Разработка сайта", "2023-01-01", "2023-12-31", "В процессе"},
		{2, "Мобильное приложение", "2023-02-15", "2024-05-30", "Завершен"},
		{3, "Система управления", "2023-06-01", "2024-03-01", "В процессе"},
		{4, "Интернет-магазин", "2023-07-01", "2024-01-01", "В процессе"},
		{5, "Блокчейн-платформа", "2023-09-01", "2024-06-30", "Планируется"},
	},
	"Разработчик": {
		{1, "Иванов Иван", "Frontend", 1, 3},
		{2, "Петров Петр", "Backend", 2, 5},
		{3, "Сидоров Сидор", "Fullstack", 3, 2},
		{4, "Кузнецова Анна", "Frontend", 4, 4},
		{5, "Михайлов Дмитрий", "Backend", 5, 6},
	},
	"Заказчик": {
		{1, "ООО Рога и Копыта", "contact1@example.com", 1, 50000.0},
		{2, "ЗАО Технологии Будущего", "contact2@example.com", 2, 200000.0},
		{3, "ООО АвтоМир", "contact3@example.com", 3, 75000.0},
		{4, "ПАО Инновации", "contact4@example.com", 4, 300000.0},
		{5, "ТехноГрупп", "contact5@example.com", 5, 45000.0},
	},
	"Тестировщик": {
		{1, "Петров Петр", "Functional", 1, 5},
		{2, "Иванова Ирина", "Performance", 2, 4},
		{3, "Сергеев Сергей", "Security", 3, 6},
		{4, "Кузнецова Анна", "Functional", 4, 3},
		{5, "Лебедев Павел", "Automation", 5, 7},
	},
	"База_данных": {
		{1, "PostgreSQL", "Relational", 1, 100.5},
		{2, "MySQL", "Relational", 2, 150.0},
		{3, "MongoDB", "NoSQL", 3, 200.5},
		{4, "Redis", "NoSQL", 4, 50.0},
		{5, "Oracle", "Relational", 5, 120.0},
	},
}

// Run creates the tables if missing, clears them and inserts the sample
// rows. The whole seed commits once.
func Run(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, stmt := range schema {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("create table: %w", err)
			}
		}
		for _, table := range Tables {
			if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}
		for _, table := range Tables {
			for _, row := range Rows[table] {
				stmt := "INSERT INTO " + table + " VALUES (?, ?, ?, ?, ?)"
				if err := tx.Exec(stmt, row...).Error; err != nil {
					return fmt.Errorf("insert into %s: %w", table, err)
				}
			}
		}
		return nil
	})
}
