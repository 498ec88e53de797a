package mapping

import (
	"github.com/SscSPs/tax_compare_app/internal/core/domain"
	"github.com/SscSPs/tax_compare_app/internal/models"
)

// ToModelTaxSchedule splits a domain schedule into its header row and bracket rows.
func ToModelTaxSchedule(d domain.CountryTaxSchedule) (models.TaxSchedule, []models.TaxBracket) {
	header := models.TaxSchedule{
		Country:     d.Country,
		Currency:    d.Currency,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
	brackets := make([]models.TaxBracket, len(d.Brackets))
	for i, b := range d.Brackets {
		brackets[i] = models.TaxBracket{
			Country:      d.Country,
			Position:     i,
			MarginalRate: b.MarginalRate,
			IncomeLimit:  b.IncomeLimit,
		}
	}
	return header, brackets
}

// ToDomainTaxSchedule assembles a domain schedule. Bracket rows must already be
// ordered by position.
func ToDomainTaxSchedule(header models.TaxSchedule, brackets []models.TaxBracket) domain.CountryTaxSchedule {
	out := domain.CountryTaxSchedule{
		Country:     header.Country,
		Currency:    header.Currency,
		Brackets:    make([]domain.TaxBracket, len(brackets)),
		AuditFields: ToDomainAuditFields(header.AuditFields),
	}
	for i, b := range brackets {
		out.Brackets[i] = domain.TaxBracket{MarginalRate: b.MarginalRate, IncomeLimit: b.IncomeLimit}
	}
	return out
}
