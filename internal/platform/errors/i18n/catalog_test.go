package i18n

import "testing"

func TestGetCatalogFallsBack(t *testing.T) {
	if got := GetCatalog("").Locale(); got != BaseLocale {
		t.Fatalf("empty locale resolved to %q", got)
	}
	if got := GetCatalog("xx-XX").Locale(); got != BaseLocale {
		t.Fatalf("unknown locale resolved to %q", got)
	}
	if got := GetCatalog(" en-US ").Locale(); got != BaseLocale {
		t.Fatalf("padded locale resolved to %q", got)
	}
}

func TestRegisterCatalog(t *testing.T) {
	RegisterCatalog("pt-BR", NewCatalog("pt-BR", map[Code]string{
		CodeHuntNotFound: "A caçada {{.HuntID}} não foi encontrada.",
	}))

	got := GetCatalog("pt-BR").Format(CodeHuntNotFound, map[string]string{"HuntID": "3"})
	if got != "A caçada 3 não foi encontrada." {
		t.Fatalf("Format = %q", got)
	}
}

func TestFormat(t *testing.T) {
	cat := GetCatalog(BaseLocale)

	got := cat.Format(CodeClueNotFound, map[string]string{"HuntID": "2", "ClueID": "5"})
	if got != "Clue 5 was not found in hunt 2." {
		t.Fatalf("Format = %q", got)
	}

	// Unknown codes render as the code itself.
	if got := cat.Format("MYSTERY_CODE", nil); got != "MYSTERY_CODE" {
		t.Fatalf("unknown code Format = %q", got)
	}

	// Nil metadata renders template variables as empty instead of failing.
	if got := cat.Format(CodeHuntNotFound, nil); got != "Hunt  was not found." {
		t.Fatalf("nil metadata Format = %q", got)
	}
}

func TestNewCatalogClonesMessages(t *testing.T) {
	const testCode Code = "TEST_CODE"

	messages := map[Code]string{testCode: "original"}
	cat := NewCatalog("test", messages)
	messages[testCode] = "mutated"

	if got := cat.Format(testCode, nil); got != "original" {
		t.Fatalf("catalog shares caller map: %q", got)
	}
}
