package hpp_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/hpp-gateway/internal/hpp"
)

func redirectFields() *hpp.FieldSet {
	fs := hpp.NewFieldSet()
	fs.Set(hpp.FieldAuthResult, "AUTHORISED")
	fs.Set(hpp.FieldMerchantReference, "order-42")
	fs.Set(hpp.FieldMerchantSig, "sig")
	fs.Set(hpp.FieldShopperLocale, "en_GB")
	fs.Set(hpp.FieldSkinCode, "4aD37dJA")
	return fs
}

func TestContractCheckPasses(t *testing.T) {
	require.NoError(t, hpp.RedirectContract.Check(redirectFields()))
}

func TestContractCheckOptionalFieldsAllowed(t *testing.T) {
	fs := redirectFields()
	fs.Set(hpp.FieldPspReference, "8816281505278603")
	fs.Set(hpp.FieldPaymentMethod, "visa")
	require.NoError(t, hpp.RedirectContract.Check(fs))
}

func TestContractCheckMissingField(t *testing.T) {
	fs := redirectFields()
	fs.Delete(hpp.FieldShopperLocale)
	err := hpp.RedirectContract.Check(fs)
	var missing *hpp.MissingFieldError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, hpp.FieldShopperLocale, missing.Field)
}

func TestContractCheckEmptyValueCountsAsMissing(t *testing.T) {
	fs := redirectFields()
	fs.Set(hpp.FieldMerchantReference, "")
	err := hpp.RedirectContract.Check(fs)
	var missing *hpp.MissingFieldError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, hpp.FieldMerchantReference, missing.Field)
}

func TestContractCheckReportsFirstMissingInDeclaredOrder(t *testing.T) {
	fs := redirectFields()
	fs.Delete(hpp.FieldSkinCode)
	fs.Delete(hpp.FieldMerchantReference)
	err := hpp.RedirectContract.Check(fs)
	var missing *hpp.MissingFieldError
	require.ErrorAs(t, err, &missing)
	// merchantReference comes before skinCode in the contract.
	require.Equal(t, hpp.FieldMerchantReference, missing.Field)
}

func TestContractCheckUnexpectedField(t *testing.T) {
	fs := redirectFields()
	fs.Set("bogusField", "value")
	err := hpp.RedirectContract.Check(fs)
	var unexpected *hpp.UnexpectedFieldError
	require.ErrorAs(t, err, &unexpected)
	require.Equal(t, "bogusField", unexpected.Field)
}

func TestContractCheckMissingReportedBeforeUnexpected(t *testing.T) {
	fs := redirectFields()
	fs.Delete(hpp.FieldAuthResult)
	fs.Set("bogusField", "value")
	err := hpp.RedirectContract.Check(fs)
	var missing *hpp.MissingFieldError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, hpp.FieldAuthResult, missing.Field)
}

func TestContractCheckDoesNotMutateFields(t *testing.T) {
	fs := redirectFields()
	fs.Set("bogusField", "value")
	_ = hpp.RedirectContract.Check(fs)
	require.Equal(t, "value", fs.Get("bogusField"))
	require.Equal(t, 6, fs.Len())
}

func TestFieldSetFromValuesSortsKeys(t *testing.T) {
	fs := hpp.FieldSetFromValues(url.Values{
		"zulu":  {"1"},
		"alpha": {"2"},
		"mike":  {"3"},
	})
	require.Equal(t, []string{"alpha", "mike", "zulu"}, fs.Keys())
}

func TestFieldSetCloneIsIndependent(t *testing.T) {
	fs := hpp.NewFieldSet()
	fs.Set("a", "1")
	clone := fs.Clone()
	clone.Set("a", "2")
	clone.Set("b", "3")
	require.Equal(t, "1", fs.Get("a"))
	require.Equal(t, 1, fs.Len())
	require.Equal(t, 2, clone.Len())
}
