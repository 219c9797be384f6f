package meta

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"duelbot/core/mdm"
)

// Page paths on the remote source.
const (
	banlistPath        = "/forbidden-limited-list"
	packsPath          = "/packs"
	selectionPacksPath = "/selection-packs"
	secretPacksPath    = "/secret-packs"
	tierListPath       = "/tier-list"
)

// NewPackWindow is how recently a pack must have been released to count as
// new.
const NewPackWindow = 30 * 24 * time.Hour

// Service scrapes game-meta pages: the forbidden/limited list, pack
// listings and the tier list. Nothing here is persisted; every call fetches
// the page it needs.
type Service struct {
	client mdm.Client
	logger *zap.Logger
}

// NewService creates a new meta service.
func NewService(client mdm.Client, logger *zap.Logger) *Service {
	return &Service{client: client, logger: logger}
}

// Banlist returns the full forbidden/limited list.
func (s *Service) Banlist(ctx context.Context) ([]BanlistEntry, error) {
	doc, err := s.client.GetDocument(ctx, s.client.BaseURL()+banlistPath)
	if err != nil {
		return nil, fmt.Errorf("fetch banlist: %w", err)
	}
	return parseBanlist(doc), nil
}

// BanlistStatus returns the status of one card. Cards absent from the list
// are unlimited.
func (s *Service) BanlistStatus(ctx context.Context, cardName string) (string, error) {
	entries, err := s.Banlist(ctx)
	if err != nil {
		return "", err
	}
	for _, entry := range entries {
		if strings.EqualFold(entry.CardName, cardName) {
			return entry.Status, nil
		}
	}
	return "Unlimited", nil
}

// Packs returns the pack listing, newest first.
func (s *Service) Packs(ctx context.Context) ([]Pack, error) {
	doc, err := s.client.GetDocument(ctx, s.client.BaseURL()+packsPath)
	if err != nil {
		return nil, fmt.Errorf("fetch packs: %w", err)
	}
	return parsePacks(doc, s.client.BaseURL()), nil
}

// LatestPack returns the most recently released pack.
func (s *Service) LatestPack(ctx context.Context) (Pack, error) {
	packs, err := s.Packs(ctx)
	if err != nil {
		return Pack{}, err
	}
	if len(packs) == 0 {
		return Pack{}, errors.New("no packs found")
	}
	return packs[0], nil
}

// NewPacks returns the packs released within the last 30 days.
func (s *Service) NewPacks(ctx context.Context) ([]Pack, error) {
	packs, err := s.Packs(ctx)
	if err != nil {
		return nil, err
	}
	cutoff := time.Now().UTC().Add(-NewPackWindow)

	var fresh []Pack
	for _, pack := range packs {
		if pack.ReleaseDate != nil && pack.ReleaseDate.After(cutoff) {
			fresh = append(fresh, pack)
		}
	}
	return fresh, nil
}

// SelectionPacks returns the selection pack listing. The selection pack
// page disappears between events; when it is gone the secret pack listing
// stands in for it.
func (s *Service) SelectionPacks(ctx context.Context) ([]Pack, error) {
	doc, err := s.client.GetDocument(ctx, s.client.BaseURL()+selectionPacksPath)
	if errors.Is(err, mdm.ErrNotFound) {
		s.logger.Info("Selection pack page gone, falling back to secret packs")
		doc, err = s.client.GetDocument(ctx, s.client.BaseURL()+secretPacksPath)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch selection packs: %w", err)
	}
	return parsePacks(doc, s.client.BaseURL()), nil
}

// TierList returns the current tier list.
func (s *Service) TierList(ctx context.Context) ([]TierEntry, error) {
	doc, err := s.client.GetDocument(ctx, s.client.BaseURL()+tierListPath)
	if err != nil {
		return nil, fmt.Errorf("fetch tier list: %w", err)
	}
	return parseTierList(doc, s.client.BaseURL()), nil
}
