package dashboard

// Mutation identifies a write whose success discards cached reads.
type Mutation string

const (
	MutationProjectCreate     Mutation = "project.create"
	MutationProjectUpdate     Mutation = "project.update"
	MutationProjectDelete     Mutation = "project.delete"
	MutationFeatureCreate     Mutation = "feature.create"
	MutationFeatureUpdate     Mutation = "feature.update"
	MutationFeatureDelete     Mutation = "feature.delete"
	MutationKeyCreate         Mutation = "key.create"
	MutationKeyUpdate         Mutation = "key.update"
	MutationKeyDelete         Mutation = "key.delete"
	MutationLanguageCreate    Mutation = "language.create"
	MutationLanguageUpdate    Mutation = "language.update"
	MutationLanguageDelete    Mutation = "language.delete"
	MutationTranslationCreate Mutation = "translation.create"
	MutationTranslationUpdate Mutation = "translation.update"
	MutationTranslationDelete Mutation = "translation.delete"
	MutationBulkUpsert        Mutation = "translation.bulk_upsert"
	MutationBulkUpload        Mutation = "translation.bulk_upload"
	MutationAITranslate       Mutation = "translation.ai_translate"
	MutationAITranslateBatch  Mutation = "translation.ai_translate_batch"
	MutationFocusSubmit       Mutation = "focus.submit"
)

// MutationScope carries the ids a mutation touched.
type MutationScope struct {
	ID        string
	FeatureID string
	KeyID     string
}

// InvalidationsFor lists the cache patterns discarded after m succeeds.
func InvalidationsFor(m Mutation, scope MutationScope) []KeyPattern {
	switch m {
	case MutationProjectCreate, MutationProjectDelete:
		return []KeyPattern{Match(ResourceProjects)}
	case MutationProjectUpdate:
		return []KeyPattern{Match(ResourceProjects), Match(ResourceProject, scope.ID)}
	case MutationFeatureCreate, MutationFeatureDelete:
		return []KeyPattern{Match(ResourceFeatures)}
	case MutationFeatureUpdate:
		return []KeyPattern{Match(ResourceFeatures), Match(ResourceFeature, scope.ID)}
	case MutationKeyCreate, MutationKeyUpdate, MutationKeyDelete:
		patterns := []KeyPattern{scoped(ResourceKeys, scope.FeatureID)}
		if scope.ID != "" {
			patterns = append(patterns, Match(ResourceKey, scope.ID))
		}
		return patterns
	case MutationLanguageCreate, MutationLanguageUpdate, MutationLanguageDelete:
		return []KeyPattern{Match(ResourceLanguages)}
	case MutationTranslationCreate, MutationTranslationUpdate, MutationTranslationDelete, MutationAITranslate:
		return []KeyPattern{scoped(ResourceTranslations, scope.KeyID), Match(ResourceStatistics)}
	case MutationBulkUpsert:
		return []KeyPattern{
			scoped(ResourceTranslations, scope.KeyID),
			Match(ResourceTranslationSearch),
			Match(ResourceStatistics),
		}
	case MutationBulkUpload:
		return []KeyPattern{Match(ResourceTranslationSearch), Match(ResourceStatistics)}
	case MutationAITranslateBatch:
		return []KeyPattern{
			Match(ResourceFeatures),
			Match(ResourceTranslations),
			Match(ResourceTranslationSearch),
			Match(ResourceStatistics),
		}
	case MutationFocusSubmit:
		return []KeyPattern{Match(ResourceStatistics), scoped(ResourceTranslations, scope.KeyID)}
	}
	return nil
}

// scoped matches one parameter value, or the whole resource when id is empty.
func scoped(resource Resource, id string) KeyPattern {
	if id == "" {
		return Match(resource)
	}
	return Match(resource, id)
}
