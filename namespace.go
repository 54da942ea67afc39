package wikidump

import "strconv"

// A Namespace is a wiki page namespace code, as parsed from the <ns>
// element of a page.
//
// The named constants cover the namespaces wikipedia defines (see
// http://en.wikipedia.org/wiki/Wikipedia:Namespace).  Codes outside
// that set are kept as-is; Known reports whether a code is one of the
// named ones.
type Namespace int

const (
	NamespaceMedia                Namespace = -2
	NamespaceSpecial              Namespace = -1
	NamespaceMain                 Namespace = 0
	NamespaceTalk                 Namespace = 1
	NamespaceUser                 Namespace = 2
	NamespaceUserTalk             Namespace = 3
	NamespaceWikipedia            Namespace = 4
	NamespaceWikipediaTalk        Namespace = 5
	NamespaceFile                 Namespace = 6
	NamespaceFileTalk             Namespace = 7
	NamespaceMediaWiki            Namespace = 8
	NamespaceMediaWikiTalk        Namespace = 9
	NamespaceTemplate             Namespace = 10
	NamespaceTemplateTalk         Namespace = 11
	NamespaceHelp                 Namespace = 12
	NamespaceHelpTalk             Namespace = 13
	NamespaceCategory             Namespace = 14
	NamespaceCategoryTalk         Namespace = 15
	NamespacePortal               Namespace = 100
	NamespacePortalTalk           Namespace = 101
	NamespaceDraft                Namespace = 118
	NamespaceDraftTalk            Namespace = 119
	NamespaceTimedText            Namespace = 710
	NamespaceTimedTextTalk        Namespace = 711
	NamespaceModule               Namespace = 828
	NamespaceModuleTalk           Namespace = 829
	NamespaceGadget               Namespace = 2300
	NamespaceGadgetTalk           Namespace = 2301
	NamespaceGadgetDefinition     Namespace = 2302
	NamespaceGadgetDefinitionTalk Namespace = 2303
)

var namespaceNames = map[Namespace]string{
	NamespaceMedia:                "Media",
	NamespaceSpecial:              "Special",
	NamespaceMain:                 "Main",
	NamespaceTalk:                 "Talk",
	NamespaceUser:                 "User",
	NamespaceUserTalk:             "User talk",
	NamespaceWikipedia:            "Wikipedia",
	NamespaceWikipediaTalk:        "Wikipedia talk",
	NamespaceFile:                 "File",
	NamespaceFileTalk:             "File talk",
	NamespaceMediaWiki:            "MediaWiki",
	NamespaceMediaWikiTalk:        "MediaWiki talk",
	NamespaceTemplate:             "Template",
	NamespaceTemplateTalk:         "Template talk",
	NamespaceHelp:                 "Help",
	NamespaceHelpTalk:             "Help talk",
	NamespaceCategory:             "Category",
	NamespaceCategoryTalk:         "Category talk",
	NamespacePortal:               "Portal",
	NamespacePortalTalk:           "Portal talk",
	NamespaceDraft:                "Draft",
	NamespaceDraftTalk:            "Draft talk",
	NamespaceTimedText:            "TimedText",
	NamespaceTimedTextTalk:        "TimedText talk",
	NamespaceModule:               "Module",
	NamespaceModuleTalk:           "Module talk",
	NamespaceGadget:               "Gadget",
	NamespaceGadgetTalk:           "Gadget talk",
	NamespaceGadgetDefinition:     "Gadget definition",
	NamespaceGadgetDefinitionTalk: "Gadget definition talk",
}

// Known reports whether this is a namespace code wikipedia defines.
func (n Namespace) Known() bool {
	_, ok := namespaceNames[n]
	return ok
}

func (n Namespace) String() string {
	if name, ok := namespaceNames[n]; ok {
		return name
	}
	return "Namespace(" + strconv.Itoa(int(n)) + ")"
}
