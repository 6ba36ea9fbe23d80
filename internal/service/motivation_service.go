package service

import (
	"studytrack_backend/internal/repository"
)

type MotivationService struct {
	MotivationRepo *repository.MotivationRepository
}

func NewMotivationService(motivationRepo *repository.MotivationRepository) *MotivationService {
	return &MotivationService{MotivationRepo: motivationRepo}
}

func (s *MotivationService) GetCurrentMotivation() (string, error) {
	motivation, err := s.MotivationRepo.GetCurrent()
	if err != nil {
		return "", err
	}
	return motivation.Content, nil
}
