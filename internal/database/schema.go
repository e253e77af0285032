package database

import (
	"context"
	"database/sql"
	"log"
)

// schema lists every table the service needs, in dependency order.
// The statements are idempotent so EnsureSchema can run on every boot.
// Note: `rows` and `row` are reserved words in MySQL 8 and must stay
// backquoted everywhere they appear.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		email VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		role ENUM('ADMIN','CUSTOMER') NOT NULL DEFAULT 'CUSTOMER',
		is_active TINYINT(1) NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_users_email (email)
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT UNSIGNED NOT NULL,
		token_hash CHAR(64) NOT NULL,
		expires_at DATETIME NOT NULL,
		revoked_at DATETIME NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_refresh_tokens_user (user_id),
		CONSTRAINT fk_refresh_tokens_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS airplane_types (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		UNIQUE KEY uq_airplane_types_name (name)
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS airplanes (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		` + "`rows`" + ` INT UNSIGNED NOT NULL,
		seats_in_row INT UNSIGNED NOT NULL,
		airplane_type_id BIGINT UNSIGNED NOT NULL,
		UNIQUE KEY uq_airplanes_name (name),
		CONSTRAINT fk_airplanes_type FOREIGN KEY (airplane_type_id) REFERENCES airplane_types(id) ON DELETE CASCADE
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS airports (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		closest_big_city VARCHAR(100) NOT NULL,
		image_path VARCHAR(255) NULL,
		UNIQUE KEY uq_airports_name (name),
		UNIQUE KEY uq_airports_name_city (name, closest_big_city)
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS routes (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		source_id BIGINT UNSIGNED NOT NULL,
		destination_id BIGINT UNSIGNED NOT NULL,
		distance INT UNSIGNED NOT NULL,
		UNIQUE KEY uq_routes_pair (source_id, destination_id),
		CONSTRAINT fk_routes_source FOREIGN KEY (source_id) REFERENCES airports(id) ON DELETE CASCADE,
		CONSTRAINT fk_routes_destination FOREIGN KEY (destination_id) REFERENCES airports(id) ON DELETE CASCADE
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS crews (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		first_name VARCHAR(100) NOT NULL,
		last_name VARCHAR(100) NOT NULL
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS flights (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		route_id BIGINT UNSIGNED NOT NULL,
		airplane_id BIGINT UNSIGNED NOT NULL,
		departure_time DATETIME NOT NULL,
		arrival_time DATETIME NOT NULL,
		KEY idx_flights_departure (departure_time),
		CONSTRAINT fk_flights_route FOREIGN KEY (route_id) REFERENCES routes(id) ON DELETE CASCADE,
		CONSTRAINT fk_flights_airplane FOREIGN KEY (airplane_id) REFERENCES airplanes(id) ON DELETE CASCADE
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS flight_crew (
		flight_id BIGINT UNSIGNED NOT NULL,
		crew_id BIGINT UNSIGNED NOT NULL,
		PRIMARY KEY (flight_id, crew_id),
		CONSTRAINT fk_flight_crew_flight FOREIGN KEY (flight_id) REFERENCES flights(id) ON DELETE CASCADE,
		CONSTRAINT fk_flight_crew_crew FOREIGN KEY (crew_id) REFERENCES crews(id) ON DELETE CASCADE
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS orders (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT UNSIGNED NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_orders_user_created (user_id, created_at),
		CONSTRAINT fk_orders_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	) ENGINE=InnoDB`,

	// uq_tickets_seat is what makes concurrent double-booking impossible:
	// the second transaction inserting the same (flight_id, row, seat)
	// fails with a duplicate-key error and rolls back its whole order.
	`CREATE TABLE IF NOT EXISTS tickets (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		` + "`row`" + ` INT UNSIGNED NOT NULL,
		seat INT UNSIGNED NOT NULL,
		flight_id BIGINT UNSIGNED NOT NULL,
		order_id BIGINT UNSIGNED NOT NULL,
		UNIQUE KEY uq_tickets_seat (flight_id, ` + "`row`" + `, seat),
		CONSTRAINT fk_tickets_flight FOREIGN KEY (flight_id) REFERENCES flights(id) ON DELETE CASCADE,
		CONSTRAINT fk_tickets_order FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE
	) ENGINE=InnoDB`,
}

// EnsureSchema creates any missing tables. It is safe to call on every
// startup; existing tables are left untouched.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	log.Println("database schema verified")
	return nil
}
