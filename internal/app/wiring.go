package app

import (
	"fmt"

	"asset-service/internal/admission"
	"asset-service/internal/audit"
	"asset-service/internal/auth"
	"asset-service/internal/config"
	internalhttp "asset-service/internal/http"
	"asset-service/internal/repository/postgres"
)

// InitializeService wires up all dependencies and returns a configured Service
func InitializeService() (*Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.New(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	accountRepo := postgres.NewAccountRepository(db)
	employeeRepo := postgres.NewEmployeeRepository(db)
	deviceRepo := postgres.NewDeviceRepository(db)
	assignmentRepo := postgres.NewAssignmentRepository(db)
	referenceRepo := postgres.NewReferenceRepository(db)

	// The ruleset is loaded once at startup. A malformed file is fatal:
	// the gate never runs with a partial ruleset.
	ruleStore, err := admission.LoadRuleStore(cfg.Admission.RulesetPath)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to load validation ruleset: %w", err)
	}

	auditLogger := audit.NewLogger(db.Pool)
	gate := admission.NewGate(ruleStore, assignmentRepo, auditLogger)

	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpiryDuration)
	authMiddleware := auth.NewMiddleware(jwtService, accountRepo)

	server := internalhttp.NewServer(&internalhttp.ServerDependencies{
		Config:         cfg,
		AccountRepo:    accountRepo,
		EmployeeRepo:   employeeRepo,
		DeviceRepo:     deviceRepo,
		AssignmentRepo: assignmentRepo,
		ReferenceRepo:  referenceRepo,
		JWTService:     jwtService,
		AuthMiddleware: authMiddleware,
		Gate:           gate,
		AuditLogger:    auditLogger,
	})

	return &Service{
		config: cfg,
		db:     db,
		server: server,
	}, nil
}
