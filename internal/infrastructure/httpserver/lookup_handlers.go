package httpserver

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/echo/v4"

	"github.com/avatarctic/profile-lookup/internal/core/domain/profile"
	"github.com/avatarctic/profile-lookup/internal/core/ports"
	"github.com/avatarctic/profile-lookup/internal/infrastructure/httpserver/helpers"
)

const (
	lookupKindProfile = "profile"
	lookupKindPhoto   = "photo"
)

var requestJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// decodeBody reads a JSON request body regardless of its Content-Type header.
func decodeBody(c echo.Context, dst any) error {
	if err := requestJSON.NewDecoder(c.Request().Body).Decode(dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	return nil
}

// POST /api/instagram-profile
func (s *Server) lookupProfile(c echo.Context) error {
	var req profile.ProfileLookupRequest
	if err := decodeBody(c, &req); err != nil {
		return err
	}

	p, err := s.profileService.LookupProfile(c.Request().Context(), req.Username)
	if err != nil {
		helpers.SetLookupOutcome(c, lookupKindProfile, ports.LookupErrorCodeOf(err).String())
		return err
	}
	helpers.SetLookupOutcome(c, lookupKindProfile, "ok")
	return c.JSON(http.StatusOK, profile.LookupResponse{Success: true, Profile: p})
}

// POST /api/whatsapp-photo
func (s *Server) lookupPhoto(c echo.Context) error {
	var req profile.PhotoLookupRequest
	if err := decodeBody(c, &req); err != nil {
		return err
	}

	res, err := s.photoService.LookupPhoto(c.Request().Context(), req.Number(), req.CountryCode)
	if err != nil {
		helpers.SetLookupOutcome(c, lookupKindPhoto, ports.LookupErrorCodeOf(err).String())
		return err
	}

	outcome := "upstream"
	switch {
	case res.Fallback:
		outcome = "fallback"
	case res.Cached:
		outcome = "cache"
	}
	helpers.SetLookupOutcome(c, lookupKindPhoto, outcome)

	isPrivate := res.Photo.IsPrivate
	return c.JSON(http.StatusOK, profile.LookupResponse{
		Success:        true,
		Result:         res.Photo.URL,
		IsPhotoPrivate: &isPrivate,
	})
}
