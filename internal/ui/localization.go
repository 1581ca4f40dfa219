package ui

import (
	"strings"

	"fyne.io/fyne/v2/lang"
)

// Supported languages
const (
	LangSystem  = "system"
	LangEnglish = "en"
	LangRussian = "ru"
	LangPortug  = "pt"
)

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle          = "app_title"
	KeyDownload          = "download"
	KeyStop              = "stop"
	KeyOpen              = "open"
	KeyReveal            = "reveal"
	KeyRemove            = "remove"
	KeyConvert           = "convert"
	KeyConvertFile       = "convert_file"
	KeyClearFinished     = "clear_finished"
	KeyHistory           = "history"
	KeySettings          = "settings"
	KeyFile              = "file"
	KeyLanguage          = "language"
	KeyDownloadDirectory = "download_directory"
	KeyMaxParallel       = "max_parallel"
	KeyQuality           = "quality"
	KeyFormat            = "format"
	KeyForceConvert      = "force_convert"
	KeyPlaylist          = "playlist"
	KeyFilenameTemplate  = "filename_template"
	KeyCustomFilename    = "custom_filename"
	KeyAutoReveal        = "auto_reveal"
	KeySave              = "save"
	KeyCancel            = "cancel"
	KeyBrowse            = "browse"
	KeyEnterURL          = "enter_url"
	KeyFetchInfo         = "fetch_info"
	KeyFetchingInfo      = "fetching_info"
	KeyInfoUnavailable   = "info_unavailable"
	KeyUploader          = "uploader"
	KeyDuration          = "duration"
	KeyUploaded          = "uploaded"
	KeyViews             = "views"
	KeyPlaylistEntries   = "playlist_entries"
	KeySettingsSaved     = "settings_saved"
	KeyDownloadStarted   = "download_started"
	KeyDownloadCompleted = "download_completed"
	KeyDownloading       = "downloading"
	KeyPostProcessing    = "post_processing"
	KeyDownloadFailed    = "download_failed"
	KeyConversionStarted = "conversion_started"
	KeyConversionDone    = "conversion_done"
	KeyConversionFailed  = "conversion_failed"
	KeyErrorStoppingTask = "error_stopping_task"
	KeyErrorOpeningFile  = "error_opening_file"
	KeyInvalidURL        = "invalid_url"
	KeyUnrecognizedURL   = "unrecognized_url"
	KeyTryAnyway         = "try_anyway"
	KeyPleaseEnterURL    = "please_enter_url"
	KeyAlreadyInQueue    = "already_in_queue"
	KeyNoHistory         = "no_history"
	KeyReady             = "ready"
	KeyClose             = "close"
	KeyConvertTo         = "convert_to"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: LangEnglish,
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language. "system" follows the OS locale and
// unknown languages are ignored.
func (l *Localization) SetLanguage(code string) {
	if code == LangSystem {
		code = strings.ToLower(strings.SplitN(string(lang.SystemLocale()), "-", 2)[0])
		if _, exists := l.texts[code]; !exists {
			code = LangEnglish
		}
	}

	if _, exists := l.texts[code]; exists {
		l.currentLanguage = code
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	if texts, exists := l.texts[LangEnglish]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		LangEnglish: "English",
		LangRussian: "Русский",
		LangPortug:  "Português",
	}
}

func (l *Localization) initializeTexts() {
	l.texts[LangEnglish] = map[string]string{
		KeyAppTitle:          "YouTube Downloader",
		KeyDownload:          "Download",
		KeyStop:              "Stop",
		KeyOpen:              "Open",
		KeyReveal:            "Reveal",
		KeyRemove:            "Remove",
		KeyConvert:           "Convert",
		KeyConvertFile:       "Convert File...",
		KeyClearFinished:     "Clear Finished",
		KeyHistory:           "History",
		KeySettings:          "Settings",
		KeyFile:              "File",
		KeyLanguage:          "Language",
		KeyDownloadDirectory: "Download Directory",
		KeyMaxParallel:       "Max Parallel Downloads",
		KeyQuality:           "Quality",
		KeyFormat:            "Format",
		KeyForceConvert:      "Force conversion (re-encode)",
		KeyPlaylist:          "Download entire playlist",
		KeyFilenameTemplate:  "Filename Template",
		KeyCustomFilename:    "Custom filename (optional)",
		KeyAutoReveal:        "Reveal files when finished",
		KeySave:              "Save",
		KeyCancel:            "Cancel",
		KeyBrowse:            "Browse",
		KeyEnterURL:          "Enter video URL (YouTube or other supported platforms)",
		KeyFetchInfo:         "Get Info",
		KeyFetchingInfo:      "Getting video information...",
		KeyInfoUnavailable:   "Could not retrieve video information, but URL might still work",
		KeyUploader:          "By",
		KeyDuration:          "Duration",
		KeyUploaded:          "Uploaded",
		KeyViews:             "Views",
		KeyPlaylistEntries:   "Videos",
		KeySettingsSaved:     "Settings saved successfully!",
		KeyDownloadStarted:   "Download started",
		KeyDownloadCompleted: "Download completed",
		KeyDownloading:       "Downloading",
		KeyPostProcessing:    "Post-processing",
		KeyDownloadFailed:    "Error during download",
		KeyConversionStarted: "Conversion started",
		KeyConversionDone:    "Conversion completed",
		KeyConversionFailed:  "Conversion failed",
		KeyErrorStoppingTask: "Error stopping task",
		KeyErrorOpeningFile:  "Error opening file",
		KeyInvalidURL:        "Invalid URL",
		KeyUnrecognizedURL:   "URL format not recognized. This might still be a valid link.",
		KeyTryAnyway:         "Try to download anyway?",
		KeyPleaseEnterURL:    "Please enter a URL",
		KeyAlreadyInQueue:    "Already in queue",
		KeyNoHistory:         "No downloads recorded yet",
		KeyReady:             "Ready",
		KeyClose:             "Close",
		KeyConvertTo:         "Convert to",
	}

	l.texts[LangRussian] = map[string]string{
		KeyAppTitle:          "YouTube Загрузчик",
		KeyDownload:          "Скачать",
		KeyStop:              "Стоп",
		KeyOpen:              "Открыть",
		KeyReveal:            "Показать",
		KeyRemove:            "Удалить",
		KeyConvert:           "Конвертировать",
		KeyConvertFile:       "Конвертировать файл...",
		KeyClearFinished:     "Очистить завершённые",
		KeyHistory:           "История",
		KeySettings:          "Настройки",
		KeyFile:              "Файл",
		KeyLanguage:          "Язык",
		KeyDownloadDirectory: "Папка загрузки",
		KeyMaxParallel:       "Макс. параллельных",
		KeyQuality:           "Качество",
		KeyFormat:            "Формат",
		KeyForceConvert:      "Принудительная конвертация",
		KeyPlaylist:          "Скачать весь плейлист",
		KeyFilenameTemplate:  "Шаблон имени файла",
		KeyCustomFilename:    "Имя файла (необязательно)",
		KeyAutoReveal:        "Показывать файлы после загрузки",
		KeySave:              "Сохранить",
		KeyCancel:            "Отмена",
		KeyBrowse:            "Обзор",
		KeyEnterURL:          "Введите URL видео (YouTube или другие платформы)",
		KeyFetchInfo:         "Информация",
		KeyFetchingInfo:      "Получение информации о видео...",
		KeyInfoUnavailable:   "Не удалось получить информацию, но URL может работать",
		KeyUploader:          "Автор",
		KeyDuration:          "Длительность",
		KeyUploaded:          "Загружено",
		KeyViews:             "Просмотры",
		KeyPlaylistEntries:   "Видео",
		KeySettingsSaved:     "Настройки успешно сохранены!",
		KeyDownloadStarted:   "Загрузка начата",
		KeyDownloadCompleted: "Загрузка завершена",
		KeyDownloading:       "Загрузка",
		KeyPostProcessing:    "Обработка",
		KeyDownloadFailed:    "Ошибка загрузки",
		KeyConversionStarted: "Конвертация начата",
		KeyConversionDone:    "Конвертация завершена",
		KeyConversionFailed:  "Ошибка конвертации",
		KeyErrorStoppingTask: "Ошибка остановки задачи",
		KeyErrorOpeningFile:  "Ошибка открытия файла",
		KeyInvalidURL:        "Неверный URL",
		KeyUnrecognizedURL:   "Формат URL не распознан. Ссылка всё ещё может быть рабочей.",
		KeyTryAnyway:         "Всё равно попробовать скачать?",
		KeyPleaseEnterURL:    "Пожалуйста, введите URL",
		KeyAlreadyInQueue:    "Уже в очереди",
		KeyNoHistory:         "Загрузок пока нет",
		KeyReady:             "Готово",
		KeyClose:             "Закрыть",
		KeyConvertTo:         "Конвертировать в",
	}

	l.texts[LangPortug] = map[string]string{
		KeyAppTitle:          "YouTube Downloader",
		KeyDownload:          "Baixar",
		KeyStop:              "Parar",
		KeyOpen:              "Abrir",
		KeyReveal:            "Mostrar",
		KeyRemove:            "Remover",
		KeyConvert:           "Converter",
		KeyConvertFile:       "Converter Arquivo...",
		KeyClearFinished:     "Limpar Concluídos",
		KeyHistory:           "Histórico",
		KeySettings:          "Configurações",
		KeyFile:              "Arquivo",
		KeyLanguage:          "Idioma",
		KeyDownloadDirectory: "Diretório de Download",
		KeyMaxParallel:       "Max Downloads Paralelos",
		KeyQuality:           "Qualidade",
		KeyFormat:            "Formato",
		KeyForceConvert:      "Forçar conversão (recodificar)",
		KeyPlaylist:          "Baixar playlist inteira",
		KeyFilenameTemplate:  "Modelo de Nome de Arquivo",
		KeyCustomFilename:    "Nome do arquivo (opcional)",
		KeyAutoReveal:        "Mostrar arquivos ao concluir",
		KeySave:              "Salvar",
		KeyCancel:            "Cancelar",
		KeyBrowse:            "Navegar",
		KeyEnterURL:          "Digite a URL do vídeo (YouTube ou outras plataformas)",
		KeyFetchInfo:         "Obter Info",
		KeyFetchingInfo:      "Obtendo informações do vídeo...",
		KeyInfoUnavailable:   "Não foi possível obter informações, mas a URL pode funcionar",
		KeyUploader:          "Por",
		KeyDuration:          "Duração",
		KeyUploaded:          "Enviado",
		KeyViews:             "Visualizações",
		KeyPlaylistEntries:   "Vídeos",
		KeySettingsSaved:     "Configurações salvas com sucesso!",
		KeyDownloadStarted:   "Download iniciado",
		KeyDownloadCompleted: "Download concluído",
		KeyDownloading:       "Baixando",
		KeyPostProcessing:    "Pós-processamento",
		KeyDownloadFailed:    "Erro durante o download",
		KeyConversionStarted: "Conversão iniciada",
		KeyConversionDone:    "Conversão concluída",
		KeyConversionFailed:  "Falha na conversão",
		KeyErrorStoppingTask: "Erro ao parar tarefa",
		KeyErrorOpeningFile:  "Erro ao abrir arquivo",
		KeyInvalidURL:        "URL inválida",
		KeyUnrecognizedURL:   "Formato de URL não reconhecido. O link ainda pode ser válido.",
		KeyTryAnyway:         "Tentar baixar mesmo assim?",
		KeyPleaseEnterURL:    "Por favor, digite uma URL",
		KeyAlreadyInQueue:    "Já na fila",
		KeyNoHistory:         "Nenhum download registrado",
		KeyReady:             "Pronto",
		KeyClose:             "Fechar",
		KeyConvertTo:         "Converter para",
	}
}
