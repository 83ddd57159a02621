package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/sangkips/billbook-api/internal/domain/enum"
	"github.com/sangkips/billbook-api/internal/testutil"
	"github.com/sangkips/billbook-api/pkg/apperror"
	"github.com/sangkips/billbook-api/pkg/logger"
	"github.com/stretchr/testify/suite"
)

type CatalogServiceSuite struct {
	suite.Suite
	ctx     context.Context
	service *CatalogService
}

func TestCatalogService(t *testing.T) {
	suite.Run(t, new(CatalogServiceSuite))
}

func (s *CatalogServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.service = NewCatalogService(testutil.NewInMemoryServiceStore(), logger.NewNop())
}

func (s *CatalogServiceSuite) TestAddService() {
	svc, err := s.service.AddService(s.ctx, &ServiceInput{AdminID: 1, Name: " Haircut ", Price: testutil.DecPtr("250")})
	s.Require().NoError(err)
	s.Equal("Haircut", svc.Name)
	s.Equal(enum.ServiceStatusActive, svc.Status)

	_, err = s.service.AddService(s.ctx, &ServiceInput{AdminID: 1, Name: "Haircut", Price: testutil.DecPtr("300")})
	s.True(apperror.HasCode(err, http.StatusConflict))

	_, err = s.service.AddService(s.ctx, &ServiceInput{AdminID: 2, Name: "Haircut", Price: testutil.DecPtr("300")})
	s.NoError(err)

	_, err = s.service.AddService(s.ctx, &ServiceInput{AdminID: 1, Name: "Free", Price: testutil.DecPtr("-1")})
	s.True(apperror.HasCode(err, http.StatusBadRequest))
}

func (s *CatalogServiceSuite) TestRemoveAndRestore() {
	svc, err := s.service.AddService(s.ctx, &ServiceInput{AdminID: 1, Name: "Shave", Price: testutil.DecPtr("100")})
	s.Require().NoError(err)

	s.True(apperror.HasCode(s.service.RemoveService(s.ctx, svc.ID, 2), http.StatusNotFound))
	s.Require().NoError(s.service.RemoveService(s.ctx, svc.ID, 1))

	active, err := s.service.ListActive(s.ctx, 1)
	s.Require().NoError(err)
	s.Empty(active)
	s.NotNil(active)

	deleted, err := s.service.ListDeleted(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().Len(deleted, 1)
	s.Equal("Shave", deleted[0].Name)

	// a removed name no longer blocks a new entry
	_, err = s.service.AddService(s.ctx, &ServiceInput{AdminID: 1, Name: "Shave", Price: testutil.DecPtr("120")})
	s.NoError(err)

	s.Require().NoError(s.service.RestoreService(s.ctx, svc.ID, 1))
	active, err = s.service.ListActive(s.ctx, 1)
	s.Require().NoError(err)
	s.Len(active, 2)
}

func (s *CatalogServiceSuite) TestEditService() {
	svc, err := s.service.AddService(s.ctx, &ServiceInput{AdminID: 1, Name: "Color", Price: testutil.DecPtr("500")})
	s.Require().NoError(err)

	edited, err := s.service.EditService(s.ctx, &ServiceInput{ID: svc.ID, AdminID: 1, Name: "Colour", Price: testutil.DecPtr("550")})
	s.Require().NoError(err)
	s.Equal("Colour", edited.Name)
	s.True(testutil.Dec("550").Equal(edited.Price))

	_, err = s.service.EditService(s.ctx, &ServiceInput{ID: svc.ID, AdminID: 2, Name: "x", Price: testutil.DecPtr("1")})
	s.True(apperror.HasCode(err, http.StatusNotFound))

	_, err = s.service.EditService(s.ctx, &ServiceInput{AdminID: 1, Name: "x", Price: testutil.DecPtr("1")})
	s.True(apperror.HasCode(err, http.StatusBadRequest))
}

func (s *CatalogServiceSuite) TestListRequiresAdmin() {
	_, err := s.service.ListActive(s.ctx, 0)
	s.True(apperror.HasCode(err, http.StatusBadRequest))
}
