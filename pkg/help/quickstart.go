package help

const QuickstartYAML = `# url-summarizer Quick Start

lengths:
  short: "About 150 words"
  medium: "About 300 words (default)"
  long: "400-500 words"
  custom: "--words N, between 50 and 2000"

providers:
  openai: "provider.type: openai (default model gpt-4o-mini)"
  anthropic: "provider.type: anthropic"
  openai-compatible: "provider.type: openai-compatible, with provider.endpoint"

commands:
  summarize_page: |
    summarizer summarize https://example.com/article

  summarize_video: |
    summarizer summarize "https://www.youtube.com/watch?v=dQw4w9WgXcQ" --length short

  summarize_many: |
    summarizer summarize --file urls.txt --workers 4 --tone Casual

  history: |
    summarizer list
    summarizer recent --limit 10
    summarizer search golang
    summarizer show 12
    summarizer keywords --limit 20

  cleanup: |
    summarizer delete 12
    summarizer clear --yes

  export: |
    summarizer export --format md
    summarizer export --format csv --query golang --name go-notes
    summarizer export --format json --stdout

config_file:
  - "config.yaml or config.toml, selected with --config"
  - "db_path, export_dir, cache_dir, cache_ttl, fetch_timeout, user_agent"
  - "provider: {type, api_key, endpoint, model}"
  - "SUMMARIZER_API_KEY overrides provider.api_key"

exports:
  - "Written to exports/{name}_{YYYYMMDD_HHMMSS}.{ext}"
  - "Two exports with the same name in the same second overwrite each other"
`
