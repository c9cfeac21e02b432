package testutils

import (
	"notion-blocks/blockmirror/database"
	"notion-blocks/blockmirror/models"
	"notion-blocks/blockmirror/utils/token"

	"github.com/stretchr/testify/mock"
)

// MockBlockService mocks the BlockServiceInterface for testing
type MockBlockService struct {
	mock.Mock
}

func blockOrNil(v interface{}) models.Block {
	if v == nil {
		return nil
	}
	return v.(models.Block)
}

func (m *MockBlockService) CreateBlock(db *database.Database, actorID string, data models.Structure) (models.Block, error) {
	args := m.Called(db, actorID, data)
	return blockOrNil(args.Get(0)), args.Error(1)
}

func (m *MockBlockService) GetBlock(db *database.Database, id string) (models.Block, error) {
	args := m.Called(db, id)
	return blockOrNil(args.Get(0)), args.Error(1)
}

func (m *MockBlockService) ListChildren(db *database.Database, id string) ([]models.Block, error) {
	args := m.Called(db, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Block), args.Error(1)
}

func (m *MockBlockService) AppendChildren(db *database.Database, actorID string, id string, children []models.Structure) (models.Block, error) {
	args := m.Called(db, actorID, id, children)
	return blockOrNil(args.Get(0)), args.Error(1)
}

func (m *MockBlockService) UpdateBlock(db *database.Database, actorID string, id string, update models.Structure) (models.Block, error) {
	args := m.Called(db, actorID, id, update)
	return blockOrNil(args.Get(0)), args.Error(1)
}

func (m *MockBlockService) ArchiveBlock(db *database.Database, actorID string, id string) (models.Block, error) {
	args := m.Called(db, actorID, id)
	return blockOrNil(args.Get(0)), args.Error(1)
}

func (m *MockBlockService) GetPlainText(db *database.Database, id string, recursive bool) (string, error) {
	args := m.Called(db, id, recursive)
	return args.String(0), args.Error(1)
}

// MockAuthService mocks the AuthServiceInterface for testing
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) RegisterIntegration(db *database.Database, name, secret string) (models.Integration, error) {
	args := m.Called(db, name, secret)
	return args.Get(0).(models.Integration), args.Error(1)
}

func (m *MockAuthService) EnsureIntegration(db *database.Database, name, secret string) (models.Integration, error) {
	args := m.Called(db, name, secret)
	return args.Get(0).(models.Integration), args.Error(1)
}

func (m *MockAuthService) Login(db *database.Database, integrationID, secret string) (string, error) {
	args := m.Called(db, integrationID, secret)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*token.JWTClaims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*token.JWTClaims), args.Error(1)
}

func (m *MockAuthService) HashSecret(secret string) (string, error) {
	args := m.Called(secret)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) CompareSecrets(hashedSecret, secret string) error {
	args := m.Called(hashedSecret, secret)
	return args.Error(0)
}

// MockPublisher records published messages and returns a preset error.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(subject string, data []byte) error {
	args := m.Called(subject, data)
	return args.Error(0)
}
