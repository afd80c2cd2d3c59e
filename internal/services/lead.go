package services

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/persx/persx-sub000/internal/data/repos"
	types "github.com/persx/persx-sub000/internal/domain"
	"github.com/persx/persx-sub000/internal/pkg/dbctx"
	perrors "github.com/persx/persx-sub000/internal/pkg/errors"
	"github.com/persx/persx-sub000/internal/platform/convertkit"
	"github.com/persx/persx-sub000/internal/platform/logger"
)

type RoadmapInput struct {
	Industry     string   `json:"industry"`
	Goals        []string `json:"goals"`
	MartechStack []string `json:"martech_stack"`
	Challenges   string   `json:"challenges"`
	Email        string   `json:"email"`

	// Filled from request headers, never from the body.
	IPAddress string `json:"-"`
	UserAgent string `json:"-"`
	Country   string `json:"-"`
	Region    string `json:"-"`
	City      string `json:"-"`
	Referrer  string `json:"-"`
}

type ContactInput struct {
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email"`
	Company  string `json:"company" form:"company"`
	Message  string `json:"message" form:"message"`
	Industry string `json:"industry" form:"industry"`
}

type LeadService interface {
	SubmitRoadmap(ctx context.Context, in RoadmapInput) (*types.RoadmapSubmission, error)
	SubmitContact(ctx context.Context, in ContactInput) (*types.ContactSubmission, error)
}

type leadService struct {
	log         *logger.Logger
	roadmapRepo repos.RoadmapSubmissionRepo
	contactRepo repos.ContactSubmissionRepo
	newsletter  convertkit.Client
}

// NewLeadService accepts a nil newsletter client.
func NewLeadService(log *logger.Logger, roadmapRepo repos.RoadmapSubmissionRepo, contactRepo repos.ContactSubmissionRepo, newsletter convertkit.Client) LeadService {
	return &leadService{
		log:         log.With("service", "LeadService"),
		roadmapRepo: roadmapRepo,
		contactRepo: contactRepo,
		newsletter:  newsletter,
	}
}

func normalizeEmail(s string, required bool) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		if required {
			return "", fmt.Errorf("%w: email is required", perrors.ErrInvalidArgument)
		}
		return "", nil
	}
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return "", fmt.Errorf("%w: invalid email", perrors.ErrInvalidArgument)
	}
	return strings.ToLower(addr.Address), nil
}

func (s *leadService) SubmitRoadmap(ctx context.Context, in RoadmapInput) (*types.RoadmapSubmission, error) {
	industry := strings.TrimSpace(in.Industry)
	if industry == "" {
		return nil, fmt.Errorf("%w: industry is required", perrors.ErrInvalidArgument)
	}
	email, err := normalizeEmail(in.Email, false)
	if err != nil {
		return nil, err
	}
	sub := &types.RoadmapSubmission{
		Industry:     industry,
		Goals:        cleanList(in.Goals),
		MartechStack: cleanList(in.MartechStack),
		Challenges:   strings.TrimSpace(in.Challenges),
		Email:        email,
		IPAddress:    in.IPAddress,
		UserAgent:    in.UserAgent,
		Country:      in.Country,
		Region:       in.Region,
		City:         in.City,
		Referrer:     in.Referrer,
	}
	if err := s.roadmapRepo.Create(dbctx.Of(ctx), sub); err != nil {
		return nil, err
	}
	s.log.Info("roadmap submitted", "submission_id", sub.ID.String(), "industry", industry)

	if email != "" {
		s.subscribe(ctx, convertkit.SubscribeRequest{
			Email:    email,
			Industry: industry,
			Fields:   map[string]string{"source": "roadmap"},
		})
	}
	return sub, nil
}

func (s *leadService) SubmitContact(ctx context.Context, in ContactInput) (*types.ContactSubmission, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", perrors.ErrInvalidArgument)
	}
	email, err := normalizeEmail(in.Email, true)
	if err != nil {
		return nil, err
	}
	msg := strings.TrimSpace(in.Message)
	if msg == "" {
		return nil, fmt.Errorf("%w: message is required", perrors.ErrInvalidArgument)
	}
	sub := &types.ContactSubmission{
		Name:     name,
		Email:    email,
		Company:  strings.TrimSpace(in.Company),
		Message:  msg,
		Industry: strings.TrimSpace(in.Industry),
	}
	if err := s.contactRepo.Create(dbctx.Of(ctx), sub); err != nil {
		return nil, err
	}
	s.log.Info("contact submitted", "submission_id", sub.ID.String(), "industry", sub.Industry)
	return sub, nil
}

// subscribe forwards to the newsletter; failures are only logged.
func (s *leadService) subscribe(ctx context.Context, req convertkit.SubscribeRequest) {
	if s.newsletter == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 15*time.Second)
	defer cancel()
	if _, err := s.newsletter.Subscribe(ctx, req); err != nil {
		s.log.Warn("newsletter subscribe failed", "industry", req.Industry, "error", err)
	}
}
