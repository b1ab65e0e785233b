package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Rules struct {
	StartMoney   int
	PassBonus    int
	TaxAmount    int
	JailFine     int
	JailMaxTurns int
	DiceSides    int
	Seed         int64
}

func DefaultRules() Rules {
	return Rules{
		StartMoney:   15000,
		PassBonus:    2000,
		TaxAmount:    2000,
		JailFine:     1000,
		JailMaxTurns: 3,
		DiceSides:    6,
	}
}

type Database struct {
	User     string
	Addr     string
	Password string
	Name     string
}

func (d Database) Enabled() bool { return d.Addr != "" }

type Config struct {
	HTTPAddr       string
	SocketAddr     string
	JWTSecret      []byte
	AllowedOrigins []string
	DB             Database
	RedisURL       string
	SnapshotTTL    time.Duration
	Rules          Rules
}

// Load reads .env when present and then the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).Warn("could not read .env")
	}
	rules := DefaultRules()
	rules.StartMoney = intEnv("START_MONEY", rules.StartMoney)
	rules.PassBonus = intEnv("PASS_BONUS", rules.PassBonus)
	rules.TaxAmount = intEnv("TAX_AMOUNT", rules.TaxAmount)
	rules.JailFine = intEnv("JAIL_FINE", rules.JailFine)
	rules.JailMaxTurns = intEnv("JAIL_MAX_TURNS", rules.JailMaxTurns)
	rules.DiceSides = intEnv("DICE_SIDES", rules.DiceSides)
	rules.Seed = int64(intEnv("RULES_SEED", 0))

	return Config{
		HTTPAddr:       strEnv("HTTP_ADDR", ":4101"),
		SocketAddr:     strEnv("SOCKET_ADDR", ":8000"),
		JWTSecret:      []byte(strEnv("JWT_SECRET", "secret")),
		AllowedOrigins: splitList(strEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		DB: Database{
			User:     os.Getenv("DB_USER"),
			Addr:     os.Getenv("DB_ADDR"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
		},
		RedisURL:    os.Getenv("REDIS_URL"),
		SnapshotTTL: durationEnv("SNAPSHOT_TTL", time.Hour),
		Rules:       rules,
	}
}

func strEnv(k, d string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return d
}

func intEnv(k string, d int) int {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return d
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logrus.WithField("key", k).Warnf("ignoring non-integer value %q", v)
		return d
	}
	return n
}

func durationEnv(k string, d time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return d
	}
	dur, err := time.ParseDuration(v)
	if err != nil {
		logrus.WithField("key", k).Warnf("ignoring bad duration %q", v)
		return d
	}
	return dur
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
