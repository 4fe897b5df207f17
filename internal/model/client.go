package model

import (
	"time"

	"github.com/google/uuid"
)

// ClientStatus отражает этап воронки: записался -> ходит -> ходил
type ClientStatus string

const (
	ClientStatusSignedUp ClientStatus = "записался"
	ClientStatusActive   ClientStatus = "ходит"
	ClientStatusFormer   ClientStatus = "ходил"
)

// ClientType тип посещения, используется и в бронированиях, и в закреплениях
type ClientType string

const (
	ClientTypeNew          ClientType = "новый"
	ClientTypeRegular      ClientType = "постоянный"
	ClientTypeTrial        ClientType = "пробный"
	ClientTypeSubscription ClientType = "абонемент"
)

// ClientStatuses порядок статусов для меню и фильтров
var ClientStatuses = []ClientStatus{ClientStatusSignedUp, ClientStatusActive, ClientStatusFormer}

// ClientTypes порядок типов для меню
var ClientTypes = []ClientType{ClientTypeNew, ClientTypeRegular, ClientTypeTrial, ClientTypeSubscription}

// SubscriptionTypes допустимые размеры абонемента (занятий в неделю)
var SubscriptionTypes = []string{"1", "4", "8"}

// Client представляет клиента (ученика) школы
type Client struct {
	ID                uuid.UUID    `json:"id"`
	ChildFullName     string       `json:"child_full_name"`
	ParentName        *string      `json:"parent_name"`
	ParentPhone       *string      `json:"parent_phone"`
	BirthDate         *time.Time   `json:"birth_date"`
	SubscriptionType  *string      `json:"subscription_type"`
	Comment           *string      `json:"comment"`
	Status            ClientStatus `json:"status"`
	AssignedTrainerID *uuid.UUID   `json:"assigned_trainer_id"`
	ArchivedAt        *time.Time   `json:"archived_at"`
	CreatedAt         time.Time    `json:"created_at"`
}
