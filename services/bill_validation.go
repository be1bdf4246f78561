package services

import (
	"regexp"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

var gstinRegex = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)

// ValidateGSTIN reports whether s looks like a 15-character GSTIN.
func ValidateGSTIN(s string) bool {
	return gstinRegex.MatchString(s)
}

// ValidateDraft checks the fields a user must get right before a document
// is saved. Numeric quantities are not checked here: blanks and garbage are
// already coerced to zero by ParseAmount.
func ValidateDraft(d Draft) error {
	errs := validation.Errors{}

	if err := validation.Validate(string(d.InvoiceType),
		validation.Required.Error("Invoice type is required"),
		validation.In(string(InvoiceTypePlain), string(InvoiceTypeTax)).Error("Unknown invoice type"),
	); err != nil {
		errs["invoice_type"] = err
	}

	if err := validation.Validate(d.Meta.Title, validation.Required.Error("Document title is required")); err != nil {
		errs["document_title"] = err
	}
	if err := validation.Validate(d.Meta.Number, validation.Required.Error("Document number is required")); err != nil {
		errs["document_number"] = err
	}
	if err := validation.Validate(d.Company.Name, validation.Required.Error("Company name is required")); err != nil {
		errs["company_name"] = err
	}
	if err := validation.Validate(d.Client.BillTo, validation.Required.Error("Bill To is required")); err != nil {
		errs["client_bill_to"] = err
	}

	// Dates reach here normalized; anything else would break range filters.
	for field, value := range map[string]string{
		"dated":     d.Meta.Dated,
		"arrival":   d.Meta.Arrival,
		"departure": d.Meta.Departure,
	} {
		if err := validation.Validate(value,
			validation.Date(StorageDateLayout).Error("Invalid date (use DD/MM/YYYY)"),
		); err != nil {
			errs[field] = err
		}
	}

	if err := validation.Validate(d.Discount,
		validation.Min(0.0).Error("Discount cannot be negative"),
		validation.Max(100.0).Error("Discount cannot exceed 100%"),
	); err != nil {
		errs["discount"] = err
	}

	if err := validation.Validate(d.Company.Email, is.EmailFormat.Error("Invalid email")); err != nil {
		errs["company_email"] = err
	}
	if err := validation.Validate(d.Client.Email, is.EmailFormat.Error("Invalid email")); err != nil {
		errs["client_email"] = err
	}
	if err := validation.Validate(d.Company.GSTIN, validation.By(gstinRule)); err != nil {
		errs["company_gstin"] = err
	}
	if err := validation.Validate(d.Client.GSTNumber, validation.By(gstinRule)); err != nil {
		errs["client_gst_number"] = err
	}

	itemErrs := validation.Errors{}
	for i, it := range d.Items {
		if err := validation.Validate(it.GSTRate,
			validation.Min(0.0).Error("GST rate cannot be negative"),
			validation.Max(100.0).Error("GST rate cannot exceed 100%"),
		); err != nil {
			itemErrs[strconv.Itoa(i)] = validation.Errors{"gst_rate": err}
		}
	}
	if len(itemErrs) > 0 {
		errs["items"] = itemErrs
	}

	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Fields: errs}
}

func gstinRule(value any) error {
	s, _ := value.(string)
	if s == "" || ValidateGSTIN(s) {
		return nil
	}
	return validation.NewError("validation_gstin", "Invalid GSTIN (expected 15 characters, e.g. 30ACEPL2168C1Z8)")
}
