package http

import (
	"github.com/aussiebroadwan/certichain/internal/certichain/domain"
	"github.com/aussiebroadwan/certichain/pkg/certsdk"
	"github.com/samber/lo"
)

func toIdentity(id domain.Identity) certsdk.Identity {
	return certsdk.Identity{
		ID:            id.ID,
		WalletAddress: id.WalletAddress,
		Role:          id.Role.String(),
		DisplayName:   id.DisplayName,
		Email:         id.Email,
		InstitutionID: id.InstitutionID,
		CreatedAt:     id.CreatedAt,
		UpdatedAt:     id.UpdatedAt,
	}
}

func toIdentities(ids []domain.Identity) []certsdk.Identity {
	return lo.Map(ids, func(id domain.Identity, _ int) certsdk.Identity { return toIdentity(id) })
}

func toInstitution(inst domain.Institution) certsdk.Institution {
	return certsdk.Institution{
		ID:             inst.ID,
		Name:           inst.Name,
		Website:        inst.Website,
		Administrators: toIdentities(inst.Administrators),
		CreatedAt:      inst.CreatedAt,
	}
}

func toParty(p domain.Party) certsdk.Party {
	return certsdk.Party{ID: p.ID, WalletAddress: p.WalletAddress, DisplayName: p.DisplayName}
}

func toMetadata(m domain.Metadata) certsdk.Metadata {
	return certsdk.Metadata{
		Description: m.Description,
		Attributes: lo.Map(m.Attributes, func(a domain.Attribute, _ int) certsdk.Attribute {
			return certsdk.Attribute{Key: a.Key, Value: a.Value, IsEncrypted: a.Encrypted}
		}),
		Properties:     m.Properties,
		ContentAddress: m.ContentAddress,
		ContentURI:     m.ContentURI,
		TransactionID:  m.TransactionID,
		Network:        m.Network,
	}
}

func fromMetadata(m certsdk.Metadata) domain.Metadata {
	return domain.Metadata{
		Description: m.Description,
		Attributes: lo.Map(m.Attributes, func(a certsdk.Attribute, _ int) domain.Attribute {
			return domain.Attribute{Key: a.Key, Value: a.Value, Encrypted: a.IsEncrypted}
		}),
		Properties:     m.Properties,
		ContentAddress: m.ContentAddress,
		ContentURI:     m.ContentURI,
		TransactionID:  m.TransactionID,
		Network:        m.Network,
	}
}

func toCertificate(c domain.Certificate) certsdk.Certificate {
	return certsdk.Certificate{
		ID:              c.ID,
		Title:           c.Title,
		Type:            string(c.Type),
		MintAddress:     c.MintAddress,
		InstitutionID:   c.InstitutionID,
		InstitutionName: c.InstitutionName,
		Recipient:       toParty(c.Recipient),
		Issuer:          toParty(c.Issuer),
		Metadata:        toMetadata(c.Metadata),
		ExpiryDate:      c.ExpiryDate,
		CreatedAt:       c.CreatedAt,
	}
}

func toShare(s domain.Share) certsdk.Share {
	return certsdk.Share{
		ID:             s.ID,
		CertificateID:  s.CertificateID,
		RecipientEmail: s.RecipientEmail,
		ExpiresAt:      s.ExpiresAt,
		IncludePrivate: s.IncludePrivate,
		AccessedAt:     s.AccessedAt,
		CreatedAt:      s.CreatedAt,
	}
}

func toNotification(n domain.Notification) certsdk.Notification {
	return certsdk.Notification{
		ID:        n.ID,
		Kind:      string(n.Kind),
		Payload:   n.Payload,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}
