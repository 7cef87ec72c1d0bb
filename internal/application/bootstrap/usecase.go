package bootstrap

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/blockvisor-setup/internal/application/dto"
	"github.com/jhoicas/blockvisor-setup/internal/domain"
	"github.com/jhoicas/blockvisor-setup/internal/domain/entity"
	"github.com/jhoicas/blockvisor-setup/internal/seeddata"
	"github.com/jhoicas/blockvisor-setup/pkg/logger"
	"github.com/jhoicas/blockvisor-setup/pkg/passhash"
)

// DefaultTimeout límite de la transacción completa.
const DefaultTimeout = 30 * time.Second

// errAlreadySeeded provoca el Rollback cuando el guard encuentra datos previos.
var errAlreadySeeded = errors.New("bootstrap ya aplicado")

// SeedUseCase siembra la organización inicial, sus usuarios, tokens, región, roles y la matriz de permisos
// en una sola transacción. Es idempotente: si la organización o el email del admin ya existen no escribe nada.
type SeedUseCase struct {
	txRunner TxRunner
	hasher   CredentialHasher
	dataset  *seeddata.Dataset
	marker   CompletionMarker
	log      *logger.Logger
	timeout  time.Duration
	rand     io.Reader
	now      func() time.Time
}

// Option configura SeedUseCase.
type Option func(*SeedUseCase)

// WithMarker registra la finalización en un marcador externo tras el Commit.
func WithMarker(m CompletionMarker) Option {
	return func(uc *SeedUseCase) { uc.marker = m }
}

// WithLogger inyecta el logger.
func WithLogger(l *logger.Logger) Option {
	return func(uc *SeedUseCase) {
		if l != nil {
			uc.log = l
		}
	}
}

// WithTimeout cambia el límite de la transacción. Valores <= 0 se ignoran.
func WithTimeout(d time.Duration) Option {
	return func(uc *SeedUseCase) {
		if d > 0 {
			uc.timeout = d
		}
	}
}

// WithRandom inyecta la fuente de aleatoriedad para IDs, tokens y passwords generados.
func WithRandom(r io.Reader) Option {
	return func(uc *SeedUseCase) {
		if r != nil {
			uc.rand = r
		}
	}
}

// WithClock inyecta el reloj.
func WithClock(now func() time.Time) Option {
	return func(uc *SeedUseCase) {
		if now != nil {
			uc.now = now
		}
	}
}

// NewSeedUseCase construye el caso de uso.
func NewSeedUseCase(txRunner TxRunner, hasher CredentialHasher, dataset *seeddata.Dataset, opts ...Option) *SeedUseCase {
	uc := &SeedUseCase{
		txRunner: txRunner,
		hasher:   hasher,
		dataset:  dataset,
		log:      logger.Nop(),
		timeout:  DefaultTimeout,
		rand:     rand.Reader,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// plan filas a insertar, todas construidas antes de abrir la transacción.
type plan struct {
	admin       *entity.User
	testUser    *entity.User
	org         *entity.Organization
	adminToken  *entity.ProvisioningToken
	testToken   *entity.ProvisioningToken
	region      *entity.Region
	assignments []*entity.RoleAssignment
	grants      []entity.RolePermission
}

// Seed ejecuta el bootstrap. Retorna Status completed o already_seeded; cualquier fallo es un error
// que envuelve uno de los errores de dominio (ErrInvalidInput, ErrEntropySource, ErrConnection,
// ErrConstraintViolation, ErrTransactionFailure, ErrTimeout) y garantiza que no quedó nada escrito.
// Todo fallo queda registrado en el log con su motivo antes de retornarse.
func (uc *SeedUseCase) Seed(ctx context.Context, in dto.SeedRequest) (*dto.SeedResult, error) {
	res, err := uc.seed(ctx, in)
	if err != nil {
		uc.log.Error().Err(err).Msg("bootstrap fallido")
		return nil, err
	}
	return res, nil
}

// ValidateRequest aplica las validaciones de entrada de Seed sin tocar la base, para rechazar
// datos inválidos antes de abrir conexiones.
func ValidateRequest(in dto.SeedRequest, dataset *seeddata.Dataset) error {
	_, err := prepare(in, dataset)
	return err
}

func (uc *SeedUseCase) seed(ctx context.Context, in dto.SeedRequest) (*dto.SeedResult, error) {
	in, err := prepare(in, uc.dataset)
	if err != nil {
		return nil, err
	}

	generatedPassword := ""
	if in.TestUserPassword == "" {
		generatedPassword, err = randomString(uc.rand, generatedPasswordLen)
		if err != nil {
			return nil, err
		}
		in.TestUserPassword = generatedPassword
	}

	p, err := uc.buildPlan(in)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	var written int64
	err = uc.txRunner.RunSeed(ctx, func(repos Repositories) error {
		n, err := uc.apply(ctx, repos, p)
		written = n
		return err
	})
	if errors.Is(err, errAlreadySeeded) {
		uc.log.Info().
			Str("org", entity.SeedOrganizationName).
			Str("email", p.admin.Email).
			Msg("bootstrap ya aplicado, no se escribe nada")
		return &dto.SeedResult{Status: dto.SeedStatusAlreadySeeded}, nil
	}
	if err != nil {
		return nil, classify(ctx, err)
	}

	result := &dto.SeedResult{
		Status:                dto.SeedStatusCompleted,
		OrgID:                 p.org.ID,
		AdminUserID:           p.admin.ID,
		AdminEmail:            p.admin.Email,
		TestUserID:            p.testUser.ID,
		TestUserEmail:         p.testUser.Email,
		AdminToken:            p.adminToken.Token,
		TestUserToken:         p.testToken.Token,
		RegionID:              p.region.ID,
		PermissionCount:       written,
		GeneratedTestPassword: generatedPassword,
	}
	uc.log.Info().
		Str("org_id", result.OrgID).
		Str("admin_user_id", result.AdminUserID).
		Int64("permissions", written).
		Msg("bootstrap completado")

	if uc.marker != nil {
		if err := uc.marker.Record(ctx, result); err != nil {
			// Los datos ya están confirmados; el marcador es solo informativo.
			uc.log.Warn().Err(err).Msg("no se pudo registrar el marcador de finalización")
		}
	}
	return result, nil
}

// apply corresponde al cuerpo de la transacción; cualquier error revierte todo.
func (uc *SeedUseCase) apply(ctx context.Context, repos Repositories, p *plan) (int64, error) {
	if err := repos.Lock.Acquire(ctx); err != nil {
		return 0, err
	}
	exists, err := repos.Orgs.ExistsByName(ctx, p.org.Name)
	if err != nil {
		return 0, err
	}
	if !exists {
		if exists, err = repos.Users.ExistsByEmail(ctx, p.admin.Email); err != nil {
			return 0, err
		}
	}
	if exists {
		return 0, errAlreadySeeded
	}

	steps := []struct {
		name string
		run  func() error
	}{
		{"admin user", func() error { return repos.Users.Create(ctx, p.admin) }},
		{"test user", func() error { return repos.Users.Create(ctx, p.testUser) }},
		{"organization", func() error { return repos.Orgs.Create(ctx, p.org) }},
		{"admin token", func() error { return repos.Tokens.Create(ctx, p.adminToken) }},
		{"test user token", func() error { return repos.Tokens.Create(ctx, p.testToken) }},
		{"region", func() error { return repos.Regions.Create(ctx, p.region) }},
		{"admin role", func() error { return repos.Roles.Assign(ctx, p.assignments[0]) }},
		{"test user role", func() error { return repos.Roles.Assign(ctx, p.assignments[1]) }},
	}
	for _, s := range steps {
		if err := s.run(); err != nil {
			return 0, fmt.Errorf("seed %s: %w", s.name, err)
		}
		uc.log.Debug().Str("step", s.name).Msg("insertado")
	}

	n, err := repos.Roles.GrantPermissions(ctx, p.grants)
	if err != nil {
		return 0, fmt.Errorf("seed role permissions: %w", err)
	}
	if n != int64(len(p.grants)) {
		return 0, fmt.Errorf("%w: se insertaron %d de %d permisos", domain.ErrTransactionFailure, n, len(p.grants))
	}
	return n, nil
}

func (uc *SeedUseCase) buildPlan(in dto.SeedRequest) (*plan, error) {
	adminCred, err := uc.hash(in.Password)
	if err != nil {
		return nil, err
	}
	testCred, err := uc.hash(in.TestUserPassword)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 6)
	for i := range ids {
		id, err := uuid.NewRandomFromReader(uc.rand)
		if err != nil {
			return nil, fmt.Errorf("%w: generar uuid: %w", domain.ErrEntropySource, err)
		}
		ids[i] = id.String()
	}
	adminTokenValue, err := randomString(uc.rand, provisioningTokenLen)
	if err != nil {
		return nil, err
	}
	testTokenValue, err := randomString(uc.rand, provisioningTokenLen)
	if err != nil {
		return nil, err
	}

	now := uc.now().UTC()
	admin := &entity.User{
		ID: ids[0], Email: in.Email, Hashword: adminCred.Hash, Salt: adminCred.Salt,
		FirstName: in.FirstName, LastName: in.LastName, CreatedAt: now, ConfirmedAt: now,
	}
	testUser := &entity.User{
		ID: ids[1], Email: entity.TestUserEmail, Hashword: testCred.Hash, Salt: testCred.Salt,
		FirstName: entity.TestUserFirstName, LastName: entity.TestUserLastName, CreatedAt: now, ConfirmedAt: now,
	}
	org := &entity.Organization{
		ID: ids[2], Name: entity.SeedOrganizationName, IsPersonal: false,
		HostCount: 1, NodeCount: 0, MemberCount: 2, CreatedAt: now, UpdatedAt: now,
	}
	return &plan{
		admin:      admin,
		testUser:   testUser,
		org:        org,
		adminToken: newProvisioningToken(ids[3], adminTokenValue, admin.ID, org.ID, now),
		testToken:  newProvisioningToken(ids[4], testTokenValue, testUser.ID, org.ID, now),
		region: &entity.Region{
			ID: ids[5], SKUCode: entity.DevRegionSKU, Key: entity.DevRegionKey, DisplayName: entity.DevRegionDisplayName,
		},
		assignments: []*entity.RoleAssignment{
			{UserID: admin.ID, OrgID: org.ID, Role: entity.RoleBlockjoyAdmin, CreatedAt: now},
			{UserID: testUser.ID, OrgID: org.ID, Role: entity.RoleOrgMember, CreatedAt: now},
		},
		grants: uc.dataset.Grants(),
	}, nil
}

func newProvisioningToken(id, value, userID, orgID string, now time.Time) *entity.ProvisioningToken {
	return &entity.ProvisioningToken{
		ID:            id,
		TokenType:     entity.TokenTypeHostProvision,
		Token:         value,
		CreatedByType: entity.CreatedByTypeUser,
		CreatedByID:   userID,
		OrgID:         orgID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func (uc *SeedUseCase) hash(password string) (passhash.Encoded, error) {
	enc, err := uc.hasher.Generate([]byte(password), nil)
	switch {
	case err == nil:
		return enc, nil
	case errors.Is(err, passhash.ErrEntropy):
		return passhash.Encoded{}, fmt.Errorf("%w: %w", domain.ErrEntropySource, err)
	case errors.Is(err, passhash.ErrEmptyPassword), errors.Is(err, passhash.ErrInvalidSalt):
		return passhash.Encoded{}, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	default:
		return passhash.Encoded{}, fmt.Errorf("hash password: %w", err)
	}
}

// prepare normaliza la entrada y verifica que la matriz cubra los roles que se asignan.
func prepare(in dto.SeedRequest, dataset *seeddata.Dataset) (dto.SeedRequest, error) {
	in, err := normalize(in)
	if err != nil {
		return in, err
	}
	if dataset == nil {
		return in, fmt.Errorf("%w: matriz de permisos no cargada", domain.ErrInvalidInput)
	}
	for _, role := range []string{entity.RoleBlockjoyAdmin, entity.RoleOrgMember} {
		if !dataset.Covers(role) {
			return in, fmt.Errorf("%w: la matriz de permisos no cubre el rol %q", domain.ErrInvalidInput, role)
		}
	}
	return in, nil
}

// normalize recorta espacios y normaliza los nombres a NFC. Los passwords no se tocan:
// el verificador recibe los bytes tal cual.
func normalize(in dto.SeedRequest) (dto.SeedRequest, error) {
	in.FirstName = norm.NFC.String(strings.TrimSpace(in.FirstName))
	in.LastName = norm.NFC.String(strings.TrimSpace(in.LastName))
	in.Email = strings.TrimSpace(in.Email)

	var missing []string
	if in.FirstName == "" {
		missing = append(missing, "first name")
	}
	if in.LastName == "" {
		missing = append(missing, "last name")
	}
	if in.Email == "" {
		missing = append(missing, "email")
	}
	if in.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return in, fmt.Errorf("%w: faltan campos: %s", domain.ErrInvalidInput, strings.Join(missing, ", "))
	}
	if at := strings.Index(in.Email, "@"); at <= 0 || at == len(in.Email)-1 {
		return in, fmt.Errorf("%w: email %q no es válido", domain.ErrInvalidInput, in.Email)
	}
	if strings.EqualFold(in.Email, entity.TestUserEmail) {
		return in, fmt.Errorf("%w: el email del administrador no puede ser %s", domain.ErrInvalidInput, entity.TestUserEmail)
	}
	return in, nil
}

// classify asegura que todo error de la transacción lleve un tipo de dominio.
func classify(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		if errors.Is(err, domain.ErrTimeout) {
			return err
		}
		return fmt.Errorf("%w: %w", domain.ErrTimeout, err)
	}
	for _, kind := range []error{
		domain.ErrConnection, domain.ErrConstraintViolation, domain.ErrTransactionFailure,
		domain.ErrEntropySource, domain.ErrInvalidInput,
	} {
		if errors.Is(err, kind) {
			return err
		}
	}
	return fmt.Errorf("%w: %w", domain.ErrTransactionFailure, err)
}
